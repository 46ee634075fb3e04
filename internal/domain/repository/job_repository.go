package repository

import (
	"context"

	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

// JobRepository define el puerto de persistencia para Job (DIP).
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Job, error)
	ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]*entity.Job, error)
}
