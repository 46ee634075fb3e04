package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empleos-api/internal/application/dto"
	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

// fakeResolver resuelve identidad desde mapas en memoria.
type fakeResolver struct {
	sessions map[string]*entity.User
	bearers  map[string]*entity.User
	err      error
}

func (f *fakeResolver) ValidateSession(_ context.Context, sessionID string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[sessionID], nil
}

func (f *fakeResolver) UserFromBearer(_ context.Context, token string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bearers[token], nil
}

func newGuardedApp(resolver identityResolver, extra ...fiber.Handler) (*fiber.App, *bool) {
	app := fiber.New()
	reached := false
	handlers := []fiber.Handler{SessionMiddleware(resolver)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		reached = true
		user := CurrentUser(c)
		return c.JSON(fiber.Map{"user_id": user.ID, "role": user.Role})
	})
	app.Get("/protegido", handlers...)
	return app, &reached
}

func decodeError(t *testing.T, resp *stdhttp.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSessionMiddleware_SinCredencial(t *testing.T) {
	app, reached := newGuardedApp(&fakeResolver{})

	req := httptest.NewRequest("GET", "/protegido", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "AUTH_REQUIRED", decodeError(t, resp).Code)
	assert.False(t, *reached, "el handler no debe ejecutarse")
}

func TestSessionMiddleware_CookieValida(t *testing.T) {
	ana := &entity.User{ID: "u-1", Role: entity.RoleJobSeeker}
	app, reached := newGuardedApp(&fakeResolver{sessions: map[string]*entity.User{"s-1": ana}})

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.AddCookie(&stdhttp.Cookie{Name: SessionCookie, Value: "s-1"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, *reached)
}

func TestSessionMiddleware_CookieInvalidaOExpirada(t *testing.T) {
	app, reached := newGuardedApp(&fakeResolver{sessions: map[string]*entity.User{}})

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.AddCookie(&stdhttp.Cookie{Name: SessionCookie, Value: "s-vencida"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", decodeError(t, resp).Code)
	assert.False(t, *reached)
}

func TestSessionMiddleware_BearerFallback(t *testing.T) {
	ana := &entity.User{ID: "u-1", Role: entity.RoleJobSeeker}
	app, reached := newGuardedApp(&fakeResolver{bearers: map[string]*entity.User{"tok-1": ana}})

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, *reached)
}

func TestSessionMiddleware_BearerMalformado(t *testing.T) {
	app, _ := newGuardedApp(&fakeResolver{})

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Un esquema no-Bearer equivale a no presentar credencial.
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "AUTH_REQUIRED", decodeError(t, resp).Code)
}

func TestSessionMiddleware_ErrorDeInfraestructura(t *testing.T) {
	app, reached := newGuardedApp(&fakeResolver{err: errors.New("db caída")})

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.False(t, *reached)
}

func TestRequireRole_RolInsuficiente(t *testing.T) {
	ana := &entity.User{ID: "u-1", Role: entity.RoleJobSeeker}
	app, reached := newGuardedApp(
		&fakeResolver{sessions: map[string]*entity.User{"s-1": ana}},
		RequireAdmin(),
	)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.AddCookie(&stdhttp.Cookie{Name: SessionCookie, Value: "s-1"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	out := decodeError(t, resp)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", out.Code)
	assert.Contains(t, out.Message, entity.RoleJobSeeker, "el mensaje nombra el rol presentado")
	assert.Contains(t, out.Message, entity.RoleAdmin, "y el rol requerido")
	assert.False(t, *reached)
}

func TestRequireRole_RolPermitido(t *testing.T) {
	admin := &entity.User{ID: "u-adm", Role: entity.RoleAdmin}
	app, reached := newGuardedApp(
		&fakeResolver{sessions: map[string]*entity.User{"s-adm": admin}},
		RequireEmployerOrAdmin(),
	)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.AddCookie(&stdhttp.Cookie{Name: SessionCookie, Value: "s-adm"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, *reached)
}
