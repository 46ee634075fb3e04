package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

// CreateJobRequest entrada para publicar una vacante.
type CreateJobRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	SalaryMin   decimal.Decimal `json:"salary_min"`
	SalaryMax   decimal.Decimal `json:"salary_max"`
}

// Validate aplica las reglas de entrada de la vacante.
func (r CreateJobRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Location, validation.Length(0, 200)),
	)
}

// UpdateJobRequest entrada para editar una vacante (campos opcionales).
type UpdateJobRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Location    *string          `json:"location"`
	SalaryMin   *decimal.Decimal `json:"salary_min"`
	SalaryMax   *decimal.Decimal `json:"salary_max"`
	Status      *string          `json:"status"` // open | closed
}

// Validate aplica las reglas de edición.
func (r UpdateJobRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(3, 200)),
		validation.Field(&r.Status, validation.In(entity.JobStatusOpen, entity.JobStatusClosed)),
	)
}

// JobResponse salida de una vacante.
type JobResponse struct {
	ID          string          `json:"id"`
	EmployerID  string          `json:"employer_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	SalaryMin   decimal.Decimal `json:"salary_min"`
	SalaryMax   decimal.Decimal `json:"salary_max"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToJobResponse convierte la entidad a su representación pública.
func ToJobResponse(j *entity.Job) *JobResponse {
	if j == nil {
		return nil
	}
	return &JobResponse{
		ID:          j.ID,
		EmployerID:  j.EmployerID,
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		SalaryMin:   j.SalaryMin,
		SalaryMax:   j.SalaryMax,
		Status:      j.Status,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}
