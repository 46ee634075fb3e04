package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/empleos-api/internal/domain"
	"github.com/jhoicas/empleos-api/internal/domain/entity"
	"github.com/jhoicas/empleos-api/internal/domain/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo implementación del puerto ApplicationRepository sobre PostgreSQL.
// required_documents es text[]; submitted_documents es JSONB (tipo → referencia).
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository construye el adaptador de persistencia para postulaciones.
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

const applicationColumns = `id, job_id, applicant_id, status, status_reason, required_documents, submitted_documents, created_at, updated_at`

// Create persiste una postulación nueva. La constraint única (job_id,
// applicant_id) respalda la regla de una postulación por candidato y vacante.
func (r *ApplicationRepo) Create(ctx context.Context, app *entity.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		app.ID, app.JobID, app.ApplicantID, app.Status, app.StatusReason,
		app.RequiredDocuments, app.SubmittedDocuments, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyApplied
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// GetByID obtiene una postulación por ID; (nil, nil) si no existe.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

// GetByJobAndApplicant obtiene la postulación de un candidato a una vacante.
func (r *ApplicationRepo) GetByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 AND applicant_id = $2`
	row := r.pool.QueryRow(ctx, query, jobID, applicantID)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application by job and applicant: %w", err)
	}
	return a, nil
}

// ListByJob lista las postulaciones de una vacante con paginación.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string, limit, offset int) ([]*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, jobID, limit, offset)
}

// ListByApplicant lista las postulaciones de un candidato con paginación.
func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string, limit, offset int) ([]*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, applicantID, limit, offset)
}

// UpdateStatus escribe la transición solo si el estado persistido sigue siendo
// fromStatus (escritura condicional sobre la fila; la atomicidad por fila de
// PostgreSQL serializa a los escritores concurrentes). Devuelve false si la
// condición no se cumplió. requiredDocs nil conserva el valor existente.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id, fromStatus, toStatus, reason string, requiredDocs []string) (bool, error) {
	query := `
		UPDATE applications
		SET status = $3, status_reason = $4, required_documents = COALESCE($5, required_documents), updated_at = now()
		WHERE id = $1 AND status = $2`
	tag, err := r.pool.Exec(ctx, query, id, fromStatus, toStatus, reason, requiredDocs)
	if err != nil {
		return false, fmt.Errorf("update application status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SaveSubmittedDocuments fusiona los documentos aportados con los existentes
// (JSONB ||) sin tocar el estado.
func (r *ApplicationRepo) SaveSubmittedDocuments(ctx context.Context, id string, docs map[string]string) error {
	query := `
		UPDATE applications
		SET submitted_documents = COALESCE(submitted_documents, '{}'::jsonb) || $2, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, docs)
	if err != nil {
		return fmt.Errorf("save submitted documents: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanApplication(row pgx.Row) (*entity.Application, error) {
	var a entity.Application
	err := row.Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.Status, &a.StatusReason,
		&a.RequiredDocuments, &a.SubmittedDocuments, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
