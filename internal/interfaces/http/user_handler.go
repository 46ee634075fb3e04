package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleos-api/internal/application/auth"
)

// UserHandler operaciones administrativas sobre usuarios.
type UserHandler struct {
	uc *auth.UseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.UseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// VerifyEmployer godoc
// @Summary      Verificar un empleador (solo admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario employer"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/verify [patch]
func (h *UserHandler) VerifyEmployer(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respond(c, fiber.StatusBadRequest, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.VerifyEmployer(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
