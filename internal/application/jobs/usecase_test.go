package jobs_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/empleos-api/internal/application/dto"
	"github.com/jhoicas/empleos-api/internal/application/jobs"
	"github.com/jhoicas/empleos-api/internal/domain"
	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

type memJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*entity.Job
}

func newMemJobRepo() *memJobRepo { return &memJobRepo{jobs: map[string]*entity.Job{}} }

func (r *memJobRepo) Create(_ context.Context, job *entity.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *memJobRepo) GetByID(_ context.Context, id string) (*entity.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

func (r *memJobRepo) Update(_ context.Context, job *entity.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *memJobRepo) List(_ context.Context, status string, _, _ int) ([]*entity.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Job
	for _, job := range r.jobs {
		if status == "" || job.Status == status {
			cp := *job
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memJobRepo) ListByEmployer(_ context.Context, employerID string, _, _ int) ([]*entity.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Job
	for _, job := range r.jobs {
		if job.EmployerID == employerID {
			cp := *job
			out = append(out, &cp)
		}
	}
	return out, nil
}

var (
	verifiedEmployer   = &entity.User{ID: "u-emp", Role: entity.RoleEmployer, Verified: true}
	unverifiedEmployer = &entity.User{ID: "u-nuevo", Role: entity.RoleEmployer}
	admin              = &entity.User{ID: "u-adm", Role: entity.RoleAdmin}
	seeker             = &entity.User{ID: "u-seek", Role: entity.RoleJobSeeker}
)

func createReq() dto.CreateJobRequest {
	return dto.CreateJobRequest{
		Title:       "Desarrollador Go",
		Description: "Backend de servicios en Go",
		Location:    "Bogotá",
		SalaryMin:   decimal.NewFromInt(6000000),
		SalaryMax:   decimal.NewFromInt(9000000),
	}
}

func TestCreate_EmployerVerificado(t *testing.T) {
	uc := jobs.NewUseCase(newMemJobRepo())

	out, err := uc.Create(context.Background(), verifiedEmployer, createReq())
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusOpen, out.Status, "las vacantes nacen abiertas")
	assert.Equal(t, verifiedEmployer.ID, out.EmployerID)
}

func TestCreate_EmployerSinVerificar(t *testing.T) {
	uc := jobs.NewUseCase(newMemJobRepo())

	_, err := uc.Create(context.Background(), unverifiedEmployer, createReq())
	assert.ErrorIs(t, err, domain.ErrEmployerNotVerified)
}

func TestCreate_JobSeekerRechazado(t *testing.T) {
	uc := jobs.NewUseCase(newMemJobRepo())

	_, err := uc.Create(context.Background(), seeker, createReq())
	assert.ErrorIs(t, err, domain.ErrInsufficientPermissions)
}

func TestCreate_AdminSinVerificacion(t *testing.T) {
	uc := jobs.NewUseCase(newMemJobRepo())

	// El admin no pasa por el flujo de verificación de employers.
	_, err := uc.Create(context.Background(), admin, createReq())
	assert.NoError(t, err)
}

func TestList_SoloAbiertas(t *testing.T) {
	repo := newMemJobRepo()
	uc := jobs.NewUseCase(repo)

	abierta, err := uc.Create(context.Background(), verifiedEmployer, createReq())
	require.NoError(t, err)

	cerrada, err := uc.Create(context.Background(), verifiedEmployer, createReq())
	require.NoError(t, err)
	closed := entity.JobStatusClosed
	_, err = uc.Update(context.Background(), verifiedEmployer, cerrada.ID, dto.UpdateJobRequest{Status: &closed})
	require.NoError(t, err)

	list, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, abierta.ID, list[0].ID)
}

func TestUpdate_SoloDuenoOAdmin(t *testing.T) {
	uc := jobs.NewUseCase(newMemJobRepo())

	job, err := uc.Create(context.Background(), verifiedEmployer, createReq())
	require.NoError(t, err)

	titulo := "Desarrollador Go Senior"

	otro := &entity.User{ID: "u-otro", Role: entity.RoleEmployer, Verified: true}
	_, err = uc.Update(context.Background(), otro, job.ID, dto.UpdateJobRequest{Title: &titulo})
	assert.ErrorIs(t, err, domain.ErrInsufficientPermissions)

	out, err := uc.Update(context.Background(), admin, job.ID, dto.UpdateJobRequest{Title: &titulo})
	require.NoError(t, err)
	assert.Equal(t, "Desarrollador Go Senior", out.Title)
	assert.Equal(t, "Backend de servicios en Go", out.Description, "los campos no enviados se conservan")
}

func TestGetByID_Inexistente(t *testing.T) {
	uc := jobs.NewUseCase(newMemJobRepo())
	_, err := uc.GetByID(context.Background(), "j-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
