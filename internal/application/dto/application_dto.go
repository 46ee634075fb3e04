package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

// ApplyRequest entrada para postularse a una vacante.
type ApplyRequest struct {
	// Referencia al CV u hoja de vida (URL o id de archivo, opcional).
	ResumeRef string `json:"resume_ref"`
}

// UpdateStatusRequest entrada para una transición de estado.
// Reason es obligatorio cuando el destino es not_proceeding;
// RequiredDocuments cuando el destino es additional_docs_required.
// Esas reglas condicionales se validan en el caso de uso contra el
// estado autoritativo leído del store.
type UpdateStatusRequest struct {
	Status            string   `json:"status"`
	Reason            string   `json:"reason"`
	RequiredDocuments []string `json:"required_documents"`
}

// Validate verifica que el destino sea un estado conocido.
func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if !entity.IsValidStatus(s) {
				return validation.NewError("validation_status", "estado desconocido")
			}
			return nil
		})),
		validation.Field(&r.Reason, validation.Length(0, 1000)),
	)
}

// SubmitDocumentsRequest entrada para aportar documentos solicitados.
// La clave es el tipo de documento; el valor, la referencia a su contenido.
type SubmitDocumentsRequest struct {
	Documents map[string]string `json:"documents"`
}

// Validate exige al menos un documento.
func (r SubmitDocumentsRequest) Validate() error {
	if len(r.Documents) == 0 {
		return validation.NewError("validation_documents", "se requiere al menos un documento")
	}
	for kind, ref := range r.Documents {
		if kind == "" || ref == "" {
			return validation.NewError("validation_documents", "tipo y referencia de documento no pueden estar vacíos")
		}
	}
	return nil
}

// ApplicationResponse salida de una postulación.
type ApplicationResponse struct {
	ID                 string            `json:"id"`
	JobID              string            `json:"job_id"`
	ApplicantID        string            `json:"applicant_id"`
	Status             string            `json:"status"`
	StatusReason       string            `json:"status_reason,omitempty"`
	RequiredDocuments  []string          `json:"required_documents,omitempty"`
	SubmittedDocuments map[string]string `json:"submitted_documents,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ToApplicationResponse convierte la entidad a su representación pública.
func ToApplicationResponse(a *entity.Application) *ApplicationResponse {
	if a == nil {
		return nil
	}
	return &ApplicationResponse{
		ID:                 a.ID,
		JobID:              a.JobID,
		ApplicantID:        a.ApplicantID,
		Status:             a.Status,
		StatusReason:       a.StatusReason,
		RequiredDocuments:  a.RequiredDocuments,
		SubmittedDocuments: a.SubmittedDocuments,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
