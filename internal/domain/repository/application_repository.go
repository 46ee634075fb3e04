package repository

import (
	"context"

	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

// ApplicationRepository define el puerto de persistencia para Application (DIP).
type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	GetByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*entity.Application, error)
	ListByJob(ctx context.Context, jobID string, limit, offset int) ([]*entity.Application, error)
	ListByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*entity.Application, error)

	// UpdateStatus aplica la transición de forma condicional: solo escribe si el
	// estado persistido sigue siendo fromStatus. Devuelve false (sin error) si
	// otro escritor concurrente ganó; el caso se resuelve releyendo, nunca
	// sobreescribiendo en silencio.
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus, reason string, requiredDocs []string) (bool, error)

	// SaveSubmittedDocuments registra los documentos aportados por el candidato
	// sin tocar el estado.
	SaveSubmittedDocuments(ctx context.Context, id string, docs map[string]string) error
}
