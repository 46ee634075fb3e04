package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de publicación de una vacante.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Job representa una vacante publicada por un employer.
type Job struct {
	ID          string
	EmployerID  string
	Title       string
	Description string
	Location    string
	SalaryMin   decimal.Decimal
	SalaryMax   decimal.Decimal
	Status      string // open, closed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy indica si la vacante pertenece al usuario dado.
func (j *Job) OwnedBy(userID string) bool {
	return j.EmployerID == userID
}
