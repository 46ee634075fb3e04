package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empleos-api/internal/application/auth"
	"github.com/jhoicas/empleos-api/internal/application/dto"
	"github.com/jhoicas/empleos-api/internal/domain"
	"github.com/jhoicas/empleos-api/internal/domain/entity"
	"github.com/jhoicas/empleos-api/pkg/config"
	"github.com/jhoicas/empleos-api/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // por id
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) SetVerified(_ context.Context, id string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Verified = verified
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context, role string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*entity.Session{}}
}

func (r *memSessionRepo) Create(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memSessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id) // idempotente
	return nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testSessionCfg = config.SessionConfig{
	Secret:       "test-secret-key-for-unit-tests",
	DurationDays: 7,
	TokenMinutes: 60,
	Issuer:       "empleos-pro-test",
}

func newTestUseCase() (*auth.UseCase, *memUserRepo, *memSessionRepo) {
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	return auth.NewUseCase(users, sessions, testSessionCfg), users, sessions
}

func registerSeeker(t *testing.T, uc *auth.UseCase, email, password string) *dto.UserResponse {
	t.Helper()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "Ana Candidata",
		Phone:    "3001234567",
		Role:     entity.RoleJobSeeker,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CredentialVault
// ──────────────────────────────────────────────────────────────────────────────

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("contraseña-segura-1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "contraseña-segura-1", hash, "el hash nunca es el password en claro")

	assert.True(t, auth.CheckPassword("contraseña-segura-1", hash))
	assert.False(t, auth.CheckPassword("otra-contraseña-2", hash))
}

func TestHashPassword_HashesDistintosPorSalt(t *testing.T) {
	h1, err := auth.HashPassword("misma-clave")
	require.NoError(t, err)
	h2, err := auth.HashPassword("misma-clave")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "el salt debe producir hashes distintos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := newTestUseCase()
	registerSeeker(t, uc, "ana@test.com", "clave-de-ana-1")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "ana@test.com", Password: "otra-clave-123", Name: "Otra Ana", Role: entity.RoleJobSeeker,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Exitoso_CreaSesionYToken(t *testing.T) {
	uc, _, sessions := newTestUseCase()
	registerSeeker(t, uc, "ana@test.com", "clave-de-ana-1")

	out, session, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "clave-de-ana-1"})
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, "ana@test.com", out.User.Email)
	assert.Equal(t, 1, sessions.count())
	assert.True(t, session.ExpiresAt.After(session.CreatedAt), "expiración estrictamente posterior a la creación")

	// El token bearer emitido es independiente de la sesión y verifica solo.
	claims := token.Verify(testSessionCfg.Secret, out.Token)
	require.NotNil(t, claims)
	assert.Equal(t, token.TypeBearer, claims.Type)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.NotEqual(t, session.ID, out.Token, "el id de sesión es opaco, no el token firmado")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _, sessions := newTestUseCase()
	registerSeeker(t, uc, "ana@test.com", "clave-de-ana-1")

	_, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "clave-equivocada"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 0, sessions.count(), "un login fallido no deja sesión")
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@test.com", Password: "cualquiera-123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones: validación, expiración perezosa, destrucción
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateSession_Vigente(t *testing.T) {
	uc, _, _ := newTestUseCase()
	user := registerSeeker(t, uc, "ana@test.com", "clave-de-ana-1")

	session, err := uc.CreateSession(context.Background(), user.ID)
	require.NoError(t, err)

	got, err := uc.ValidateSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
}

func TestValidateSession_Inexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()
	got, err := uc.ValidateSession(context.Background(), "00000000-0000-0000-0000-00000000dead")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestValidateSession_ExpiradaSeBorraPerezosamente(t *testing.T) {
	uc, _, sessions := newTestUseCase()
	user := registerSeeker(t, uc, "ana@test.com", "clave-de-ana-1")

	// Sesión vencida plantada directamente en el repo.
	expired := &entity.Session{
		ID:        "11111111-1111-1111-1111-111111111111",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, sessions.Create(context.Background(), expired))
	require.Equal(t, 1, sessions.count())

	got, err := uc.ValidateSession(context.Background(), expired.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "sesión vencida no autentica")
	assert.Equal(t, 0, sessions.count(), "la validación borra la fila vencida")

	// Segunda validación del mismo id: el borrado fue idempotente, mismo resultado.
	got, err = uc.ValidateSession(context.Background(), expired.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDestroySession_Idempotente(t *testing.T) {
	uc, _, sessions := newTestUseCase()
	user := registerSeeker(t, uc, "ana@test.com", "clave-de-ana-1")

	session, err := uc.CreateSession(context.Background(), user.ID)
	require.NoError(t, err)

	require.NoError(t, uc.DestroySession(context.Background(), session.ID))
	assert.Equal(t, 0, sessions.count())

	// Borrar de nuevo no es error.
	require.NoError(t, uc.DestroySession(context.Background(), session.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Token bearer
// ──────────────────────────────────────────────────────────────────────────────

func TestUserFromBearer(t *testing.T) {
	uc, _, _ := newTestUseCase()
	registerSeeker(t, uc, "ana@test.com", "clave-de-ana-1")

	out, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "clave-de-ana-1"})
	require.NoError(t, err)

	got, err := uc.UserFromBearer(context.Background(), out.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, out.User.ID, got.ID)
}

func TestUserFromBearer_RechazaTokenDeSesion(t *testing.T) {
	uc, _, _ := newTestUseCase()
	user := registerSeeker(t, uc, "ana@test.com", "clave-de-ana-1")

	// Un token firmado con discriminador de sesión no sirve como bearer.
	sessionToken, err := token.Sign(testSessionCfg.Secret, user.ID, entity.RoleJobSeeker, token.TypeSession, testSessionCfg.Issuer, time.Hour)
	require.NoError(t, err)

	got, err := uc.UserFromBearer(context.Background(), sessionToken)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserFromBearer_TokenInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase()
	got, err := uc.UserFromBearer(context.Background(), "token.invalido.aqui")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verificación de empleadores
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyEmployer(t *testing.T) {
	uc, users, _ := newTestUseCase()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "rrhh@acme.com", Password: "clave-de-rrhh-1", Name: "ACME RRHH", Role: entity.RoleEmployer,
	})
	require.NoError(t, err)
	assert.False(t, out.Verified, "un employer nace sin verificar")

	verified, err := uc.VerifyEmployer(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	stored, err := users.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, stored.Verified)
}

func TestVerifyEmployer_SoloAplicaAEmployers(t *testing.T) {
	uc, _, _ := newTestUseCase()
	seeker := registerSeeker(t, uc, "ana@test.com", "clave-de-ana-1")

	_, err := uc.VerifyEmployer(context.Background(), seeker.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.VerifyEmployer(context.Background(), "00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
