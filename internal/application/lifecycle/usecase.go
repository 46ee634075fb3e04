package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/empleos-api/internal/application/dto"
	"github.com/jhoicas/empleos-api/internal/application/notification"
	"github.com/jhoicas/empleos-api/internal/domain"
	"github.com/jhoicas/empleos-api/internal/domain/entity"
	"github.com/jhoicas/empleos-api/internal/domain/repository"
	"github.com/jhoicas/empleos-api/pkg/logger"
)

// UseCase gobierna el ciclo de vida de las postulaciones: creación,
// transiciones de estado guardadas y aporte de documentos. Las transiciones
// se validan contra el estado autoritativo leído del store, nunca contra una
// suposición del llamador.
type UseCase struct {
	appRepo    repository.ApplicationRepository
	jobRepo    repository.JobRepository
	userRepo   repository.UserRepository
	dispatcher *notification.Dispatcher
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de ciclo de vida.
func NewUseCase(
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	dispatcher *notification.Dispatcher,
	log *logger.Logger,
) *UseCase {
	return &UseCase{appRepo: appRepo, jobRepo: jobRepo, userRepo: userRepo, dispatcher: dispatcher, log: log}
}

// Apply crea la postulación de un candidato a una vacante abierta, en estado
// applied. Una sola postulación por candidato y vacante.
func (uc *UseCase) Apply(ctx context.Context, actor *entity.User, jobID string, in dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if job.Status != entity.JobStatusOpen {
		return nil, domain.ErrConflict
	}
	existing, err := uc.appRepo.GetByJobAndApplicant(ctx, jobID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyApplied
	}
	now := time.Now()
	app := &entity.Application{
		ID:          uuid.New().String(),
		JobID:       jobID,
		ApplicantID: actor.ID,
		Status:      entity.StatusApplied,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.ResumeRef != "" {
		app.SubmittedDocuments = map[string]string{"resume": in.ResumeRef}
	}
	if err := uc.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	uc.dispatcher.DispatchAsync(notification.Event{
		ApplicationID:  app.ID,
		NewStatus:      app.Status,
		RecipientPhone: actor.Phone,
		RecipientName:  actor.Name,
		JobTitle:       job.Title,
	})
	return dto.ToApplicationResponse(app), nil
}

// UpdateStatus aplica una transición guardada. El actor debe ser admin o el
// employer dueño de la vacante. La escritura es condicional sobre el estado
// leído: si un escritor concurrente ganó, la relectura produce
// ErrInvalidTransition en lugar de una sobreescritura silenciosa.
// Tras confirmar, emite exactamente un evento de notificación cuyo resultado
// no participa del éxito de la transición.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor *entity.User, applicationID string, in dto.UpdateStatusRequest) (*dto.ApplicationResponse, error) {
	app, job, err := uc.loadForEmployer(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}

	target := entity.NormalizeStatus(in.Status)
	if err := validateTransition(app, target, in); err != nil {
		return nil, err
	}

	var docs []string
	if target == entity.StatusAdditionalDocs {
		docs = in.RequiredDocuments
	}
	reason := ""
	if target == entity.StatusNotProceeding {
		reason = in.Reason
	}

	ok, err := uc.appRepo.UpdateStatus(ctx, app.ID, app.Status, target, reason, docs)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Perdimos la carrera: el estado persistido ya cambió. Releer y
		// devolver la transición como inválida respecto al estado real.
		current, rerr := uc.appRepo.GetByID(ctx, app.ID)
		if rerr == nil && current != nil {
			uc.log.Debug().
				Str("application_id", app.ID).
				Str("expected", app.Status).
				Str("actual", current.Status).
				Msg("transición perdió escritura concurrente")
		}
		return nil, domain.ErrInvalidTransition
	}

	app.Status = target
	app.StatusReason = reason
	if docs != nil {
		app.RequiredDocuments = docs
	}
	app.UpdatedAt = time.Now()

	uc.notifyApplicant(ctx, app, job, reason)
	return dto.ToApplicationResponse(app), nil
}

// SubmitDocuments registra los documentos aportados por el candidato dueño de
// la postulación. No avanza el estado: el empleador decide la transición
// siguiente de forma manual.
func (uc *UseCase) SubmitDocuments(ctx context.Context, actor *entity.User, applicationID string, in dto.SubmitDocumentsRequest) (*dto.ApplicationResponse, error) {
	app, err := uc.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if app.ApplicantID != actor.ID {
		return nil, domain.ErrInsufficientPermissions
	}
	if entity.IsTerminalStatus(app.Status) {
		return nil, domain.ErrConflict
	}
	if err := uc.appRepo.SaveSubmittedDocuments(ctx, app.ID, in.Documents); err != nil {
		return nil, err
	}
	if app.SubmittedDocuments == nil {
		app.SubmittedDocuments = make(map[string]string, len(in.Documents))
	}
	for kind, ref := range in.Documents {
		app.SubmittedDocuments[kind] = ref
	}
	app.UpdatedAt = time.Now()
	return dto.ToApplicationResponse(app), nil
}

// GetByID devuelve una postulación visible para el actor: el candidato dueño,
// el employer dueño de la vacante o un admin.
func (uc *UseCase) GetByID(ctx context.Context, actor *entity.User, applicationID string) (*dto.ApplicationResponse, error) {
	app, err := uc.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.canView(ctx, actor, app); err != nil {
		return nil, err
	}
	return dto.ToApplicationResponse(app), nil
}

// ListByJob lista las postulaciones de una vacante para su employer o un admin.
func (uc *UseCase) ListByJob(ctx context.Context, actor *entity.User, jobID string, page dto.PageRequest) ([]*dto.ApplicationResponse, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != entity.RoleAdmin && !job.OwnedBy(actor.ID) {
		return nil, domain.ErrInsufficientPermissions
	}
	page.DefaultPage()
	list, err := uc.appRepo.ListByJob(ctx, jobID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// ListOwn lista las postulaciones del candidato autenticado.
func (uc *UseCase) ListOwn(ctx context.Context, actor *entity.User, page dto.PageRequest) ([]*dto.ApplicationResponse, error) {
	page.DefaultPage()
	list, err := uc.appRepo.ListByApplicant(ctx, actor.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// loadForEmployer carga postulación y vacante verificando que el actor pueda
// administrarla (admin o employer dueño de la vacante).
func (uc *UseCase) loadForEmployer(ctx context.Context, actor *entity.User, applicationID string) (*entity.Application, *entity.Job, error) {
	app, err := uc.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	if app == nil {
		return nil, nil, domain.ErrNotFound
	}
	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, domain.ErrNotFound
	}
	if actor.Role != entity.RoleAdmin && !job.OwnedBy(actor.ID) {
		return nil, nil, domain.ErrInsufficientPermissions
	}
	return app, job, nil
}

// validateTransition aplica el grafo y las reglas de política de la transición.
func validateTransition(app *entity.Application, target string, in dto.UpdateStatusRequest) error {
	if !app.CanTransitionTo(target) {
		return domain.ErrInvalidTransition
	}
	if target == entity.StatusNotProceeding && in.Reason == "" {
		return domain.ErrInvalidInput
	}
	if target == entity.StatusAdditionalDocs && len(in.RequiredDocuments) == 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// notifyApplicant arma el evento de notificación y lo despacha en segundo
// plano. La carga del candidato usa el contexto del request (todavía vivo en
// este punto); el envío al gateway ya no.
func (uc *UseCase) notifyApplicant(ctx context.Context, app *entity.Application, job *entity.Job, reason string) {
	applicant, err := uc.userRepo.GetByID(ctx, app.ApplicantID)
	if err != nil || applicant == nil {
		uc.log.Warn().Err(err).
			Str("application_id", app.ID).
			Msg("no se pudo cargar el candidato para notificar")
		return
	}
	uc.dispatcher.DispatchAsync(notification.Event{
		ApplicationID:  app.ID,
		NewStatus:      app.Status,
		Reason:         reason,
		RecipientPhone: applicant.Phone,
		RecipientName:  applicant.Name,
		JobTitle:       job.Title,
	})
}

func (uc *UseCase) canView(ctx context.Context, actor *entity.User, app *entity.Application) error {
	if actor.Role == entity.RoleAdmin || app.ApplicantID == actor.ID {
		return nil
	}
	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if job != nil && job.OwnedBy(actor.ID) {
		return nil
	}
	return domain.ErrInsufficientPermissions
}

func toResponses(list []*entity.Application) []*dto.ApplicationResponse {
	out := make([]*dto.ApplicationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToApplicationResponse(a))
	}
	return out
}
