package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleos-api/internal/application/dto"
	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

// SessionCookie es el nombre de la cookie que transporta el id de sesión.
const SessionCookie = "session"

// Local key para el usuario autenticado en Fiber.
const localUser = "auth_user"

// identityResolver es el contrato mínimo que necesita el middleware para
// resolver la identidad. Lo implementa *auth.UseCase; el uso de interfaz
// facilita los tests con un fake.
type identityResolver interface {
	ValidateSession(ctx context.Context, sessionID string) (*entity.User, error)
	UserFromBearer(ctx context.Context, token string) (*entity.User, error)
}

// SessionMiddleware resuelve la identidad del request: primero la cookie
// "session" (navegadores), después el header Authorization Bearer (clientes
// API). Sin credencial → 401 AUTH_REQUIRED. Credencial presente pero inválida
// o vencida → 401 SESSION_EXPIRED; a propósito un solo código para ambos
// casos, el almacén no los distingue hacia el llamador.
func SessionMiddleware(resolver identityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookie)
		bearer := bearerToken(c)
		if sessionID == "" && bearer == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "AUTH_REQUIRED", Message: "autenticación requerida"})
		}

		var user *entity.User
		var err error
		if sessionID != "" {
			user, err = resolver.ValidateSession(c.Context(), sessionID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo validar la sesión"})
			}
		}
		if user == nil && bearer != "" {
			user, err = resolver.UserFromBearer(c.Context(), bearer)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo validar el token"})
			}
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "sesión inválida o expirada"})
		}

		c.Locals(localUser, user)
		return c.Next()
	}
}

// RequireRole autoriza por rol. Debe usarse DESPUÉS de SessionMiddleware.
// En el rechazo se incluyen rol presentado y roles requeridos para diagnóstico.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "AUTH_REQUIRED", Message: "autenticación requerida"})
		}
		for _, role := range allowedRoles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_PERMISSIONS",
			Message: "rol '" + user.Role + "' no autorizado; se requiere uno de: " + strings.Join(allowedRoles, ", "),
		})
	}
}

// Composiciones de conveniencia.
func RequireJobSeeker() fiber.Handler       { return RequireRole(entity.RoleJobSeeker) }
func RequireEmployerOrAdmin() fiber.Handler { return RequireRole(entity.RoleEmployer, entity.RoleAdmin) }
func RequireAdmin() fiber.Handler           { return RequireRole(entity.RoleAdmin) }

// CurrentUser devuelve el usuario autenticado del contexto (después del middleware).
func CurrentUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(localUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// bearerToken extrae el token del header Authorization ("Bearer <token>").
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
