package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleos-api/internal/application/dto"
	"github.com/jhoicas/empleos-api/internal/application/lifecycle"
)

// ApplicationHandler maneja las peticiones HTTP del ciclo de vida de postulaciones.
type ApplicationHandler struct {
	uc *lifecycle.UseCase
}

// NewApplicationHandler construye el handler.
func NewApplicationHandler(uc *lifecycle.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Apply godoc
// @Summary      Postularse a una vacante
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la vacante"
// @Param        body  body  dto.ApplyRequest  false  "Referencia al CV (opcional)"
// @Success      201   {object}  dto.ApplicationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	jobID := c.Params("id")
	if jobID == "" {
		return respond(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	var in dto.ApplyRequest
	// Cuerpo opcional: una postulación sin CV es válida.
	_ = c.BodyParser(&in)
	out, err := h.uc.Apply(c.Context(), CurrentUser(c), jobID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar el estado de una postulación
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la postulación"
// @Param        body  body  dto.UpdateStatusRequest  true  "Estado destino, motivo y documentos requeridos"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respond(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := in.Validate(); err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.Context(), CurrentUser(c), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// SubmitDocuments godoc
// @Summary      Aportar documentos solicitados
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la postulación"
// @Param        body  body  dto.SubmitDocumentsRequest  true  "Documentos: tipo → referencia"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/documents [post]
func (h *ApplicationHandler) SubmitDocuments(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respond(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	var in dto.SubmitDocumentsRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := in.Validate(); err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.SubmitDocuments(c.Context(), CurrentUser(c), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener postulación por ID
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la postulación"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respond(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.GetByID(c.Context(), CurrentUser(c), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListByJob godoc
// @Summary      Listar postulaciones de una vacante
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la vacante"
// @Success      200  {array}  dto.ApplicationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/applications [get]
func (h *ApplicationHandler) ListByJob(c *fiber.Ctx) error {
	jobID := c.Params("id")
	if jobID == "" {
		return respond(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "paginación inválida")
	}
	out, err := h.uc.ListByJob(c.Context(), CurrentUser(c), jobID, page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListOwn godoc
// @Summary      Listar mis postulaciones
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ApplicationResponse
// @Router       /api/applications [get]
func (h *ApplicationHandler) ListOwn(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "paginación inválida")
	}
	out, err := h.uc.ListOwn(c.Context(), CurrentUser(c), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
