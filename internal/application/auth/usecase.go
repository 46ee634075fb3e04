package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/empleos-api/internal/application/dto"
	"github.com/jhoicas/empleos-api/internal/domain"
	"github.com/jhoicas/empleos-api/internal/domain/entity"
	"github.com/jhoicas/empleos-api/internal/domain/repository"
	"github.com/jhoicas/empleos-api/pkg/config"
	"github.com/jhoicas/empleos-api/pkg/token"
)

// UseCase casos de uso de autenticación: registro, login, sesiones y
// verificación de empleadores.
type UseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         config.SessionConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg config.SessionConfig) *UseCase {
	return &UseCase{userRepo: userRepo, sessionRepo: sessionRepo, cfg: cfg}
}

// HashPassword genera el hash bcrypt (con salt propio) de un password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword verifica un password en claro contra su hash bcrypt.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe. Los employer nacen
// sin verificar; un admin los habilita después.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         in.Role,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Login verifica email/password, crea la sesión persistida y emite un token
// bearer independiente. La sesión y el token son credenciales separadas: la
// rotación del secreto de firma no invalida sesiones vigentes.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, *entity.Session, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !CheckPassword(in.Password, user.PasswordHash) {
		return nil, nil, domain.ErrInvalidCredentials
	}
	session, err := uc.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	bearer, err := token.Sign(uc.cfg.Secret, user.ID, user.Role, token.TypeBearer, uc.cfg.Issuer, uc.cfg.TokenTTL())
	if err != nil {
		return nil, nil, err
	}
	return &dto.LoginResponse{Token: bearer, User: *dto.ToUserResponse(user)}, session, nil
}

// CreateSession persiste una sesión nueva con id opaco aleatorio y vencimiento
// estrictamente posterior a la creación (ventana fija configurada, 7 días por defecto).
func (uc *UseCase) CreateSession(ctx context.Context, userID string) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(uc.cfg.Duration()),
		CreatedAt: now,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	return session, nil
}

// ValidateSession busca la sesión y carga su usuario. Devuelve (nil, nil) si
// no existe o ya venció; en el segundo caso borra la fila (limpieza perezosa,
// sin barredor de fondo). El delete es idempotente: bajo validaciones
// concurrentes de una sesión vencida a lo sumo una borra y el resultado es el
// mismo para todas.
func (uc *UseCase) ValidateSession(ctx context.Context, sessionID string) (*entity.User, error) {
	if sessionID == "" {
		return nil, nil
	}
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return uc.userRepo.GetByID(ctx, session.UserID)
}

// DestroySession borra la sesión sin condiciones; borrar una inexistente no es error.
func (uc *UseCase) DestroySession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessionRepo.Delete(ctx, sessionID)
}

// UserFromBearer valida un token bearer (clientes API sin cookie) y carga su
// usuario. Devuelve (nil, nil) si el token no verifica o no es de tipo bearer.
func (uc *UseCase) UserFromBearer(ctx context.Context, tokenString string) (*entity.User, error) {
	claims := token.Verify(uc.cfg.Secret, tokenString)
	if claims == nil || claims.Type != token.TypeBearer {
		return nil, nil
	}
	return uc.userRepo.GetByID(ctx, claims.UserID)
}

// VerifyEmployer marca a un employer como verificado (operación de admin).
func (uc *UseCase) VerifyEmployer(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role != entity.RoleEmployer {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.userRepo.SetVerified(ctx, userID, true); err != nil {
		return nil, err
	}
	user.Verified = true
	return dto.ToUserResponse(user), nil
}
