package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/empleos-api/internal/application/dto"
	"github.com/jhoicas/empleos-api/internal/domain"
	"github.com/jhoicas/empleos-api/internal/domain/entity"
	"github.com/jhoicas/empleos-api/internal/domain/repository"
)

// UseCase casos de uso de vacantes (CRUD de apoyo; sin lógica de ranking).
type UseCase struct {
	jobRepo repository.JobRepository
}

// NewUseCase construye el caso de uso de vacantes.
func NewUseCase(jobRepo repository.JobRepository) *UseCase {
	return &UseCase{jobRepo: jobRepo}
}

// Create publica una vacante. Requiere un employer verificado o un admin.
func (uc *UseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if !actor.CanManageJobs() {
		if actor.Role == entity.RoleEmployer {
			return nil, domain.ErrEmployerNotVerified
		}
		return nil, domain.ErrInsufficientPermissions
	}
	now := time.Now()
	job := &entity.Job{
		ID:          uuid.New().String(),
		EmployerID:  actor.ID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		SalaryMin:   in.SalaryMin,
		SalaryMax:   in.SalaryMax,
		Status:      entity.JobStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return dto.ToJobResponse(job), nil
}

// GetByID obtiene una vacante.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToJobResponse(job), nil
}

// List lista vacantes abiertas (listado público).
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.JobResponse, error) {
	page.DefaultPage()
	list, err := uc.jobRepo.List(ctx, entity.JobStatusOpen, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.JobResponse, 0, len(list))
	for _, j := range list {
		out = append(out, dto.ToJobResponse(j))
	}
	return out, nil
}

// Update edita una vacante. Solo el employer dueño o un admin.
func (uc *UseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != entity.RoleAdmin && !job.OwnedBy(actor.ID) {
		return nil, domain.ErrInsufficientPermissions
	}
	if in.Title != nil {
		job.Title = *in.Title
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Location != nil {
		job.Location = *in.Location
	}
	if in.SalaryMin != nil {
		job.SalaryMin = *in.SalaryMin
	}
	if in.SalaryMax != nil {
		job.SalaryMax = *in.SalaryMax
	}
	if in.Status != nil {
		job.Status = *in.Status
	}
	job.UpdatedAt = time.Now()
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return dto.ToJobResponse(job), nil
}
