package entity

import "time"

// Estados del ciclo de vida de una postulación.
const (
	StatusApplied            = "applied"
	StatusPending            = "pending" // sinónimo legado de applied, se normaliza en entrada
	StatusReviewed           = "reviewed"
	StatusAdditionalDocs     = "additional_docs_required"
	StatusInterviewScheduled = "interview_scheduled"
	StatusInterviewCompleted = "interview_completed"
	StatusHired              = "hired"
	StatusNotProceeding      = "not_proceeding"
)

// allowedTransitions define el grafo de transiciones permitidas.
// Los estados terminales (hired, not_proceeding) no tienen salidas.
var allowedTransitions = map[string][]string{
	StatusApplied:            {StatusReviewed, StatusAdditionalDocs, StatusInterviewScheduled, StatusNotProceeding},
	StatusReviewed:           {StatusAdditionalDocs, StatusInterviewScheduled, StatusNotProceeding},
	StatusAdditionalDocs:     {StatusInterviewScheduled, StatusNotProceeding},
	StatusInterviewScheduled: {StatusInterviewCompleted, StatusNotProceeding},
	StatusInterviewCompleted: {StatusHired, StatusNotProceeding},
	StatusHired:              {},
	StatusNotProceeding:      {},
}

// ApplicationStatuses lista todos los estados canónicos (sin el sinónimo pending).
func ApplicationStatuses() []string {
	return []string{
		StatusApplied, StatusReviewed, StatusAdditionalDocs,
		StatusInterviewScheduled, StatusInterviewCompleted,
		StatusHired, StatusNotProceeding,
	}
}

// NormalizeStatus convierte el sinónimo legado pending en applied.
func NormalizeStatus(status string) string {
	if status == StatusPending {
		return StatusApplied
	}
	return status
}

// IsValidStatus verifica que el estado exista en el grafo (acepta pending).
func IsValidStatus(status string) bool {
	_, ok := allowedTransitions[NormalizeStatus(status)]
	return ok
}

// IsTerminalStatus indica si el estado no tiene transiciones de salida.
func IsTerminalStatus(status string) bool {
	return len(allowedTransitions[NormalizeStatus(status)]) == 0 && IsValidStatus(status)
}

// CanTransition indica si el grafo permite pasar de from a to.
func CanTransition(from, to string) bool {
	from = NormalizeStatus(from)
	to = NormalizeStatus(to)
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Application representa la postulación de un candidato a una vacante.
// El estado solo se muta mediante transiciones validadas; nunca se borra
// físicamente (ciclo de vida blando).
type Application struct {
	ID                 string
	JobID              string
	ApplicantID        string
	Status             string
	StatusReason       string            // motivo del último not_proceeding (vacío en otros casos)
	RequiredDocuments  []string          // tipos de documento exigidos en additional_docs_required
	SubmittedDocuments map[string]string // tipo de documento → referencia al contenido
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CanTransitionTo valida una transición desde el estado actual de la postulación.
func (a *Application) CanTransitionTo(target string) bool {
	return CanTransition(a.Status, target)
}
