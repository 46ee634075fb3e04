package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleos-api/internal/application/dto"
	"github.com/jhoicas/empleos-api/internal/domain"
)

// domainError mapea los errores de dominio a su respuesta HTTP.
// Los errores no mapeados se reportan como 500 INTERNAL.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return respond(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas")
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return respond(c, fiber.StatusUnauthorized, "AUTH_REQUIRED", "autenticación requerida")
	case errors.Is(err, domain.ErrSessionExpired):
		return respond(c, fiber.StatusUnauthorized, "SESSION_EXPIRED", "sesión inválida o expirada")
	case errors.Is(err, domain.ErrInsufficientPermissions):
		return respond(c, fiber.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "permisos insuficientes para esta operación")
	case errors.Is(err, domain.ErrEmployerNotVerified):
		return respond(c, fiber.StatusForbidden, "EMPLOYER_NOT_VERIFIED", "el empleador aún no fue verificado por un administrador")
	case errors.Is(err, domain.ErrInvalidTransition):
		return respond(c, fiber.StatusConflict, "INVALID_TRANSITION", "el estado actual no permite esa transición")
	case errors.Is(err, domain.ErrAlreadyApplied):
		return respond(c, fiber.StatusConflict, "ALREADY_APPLIED", "ya existe una postulación para esta vacante")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado")
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual")
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "entrada inválida")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado")
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

// validationError responde 400 con el detalle de la regla incumplida.
func validationError(c *fiber.Ctx, err error) error {
	return respond(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
}

func respond(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
