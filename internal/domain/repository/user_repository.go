package repository

import (
	"context"

	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetVerified(ctx context.Context, id string, verified bool) error
	List(ctx context.Context, role string, limit, offset int) ([]*entity.User, error)
}
