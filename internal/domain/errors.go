package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrUserNotFound            = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists      = errors.New("el email ya está registrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrInvalidCredentials      = errors.New("credenciales inválidas")
	ErrAuthenticationRequired  = errors.New("autenticación requerida")
	ErrSessionExpired          = errors.New("sesión inválida o expirada")
	ErrInsufficientPermissions = errors.New("permisos insuficientes")
	ErrInvalidTransition       = errors.New("transición de estado no permitida")
	ErrEmployerNotVerified     = errors.New("el empleador no está verificado")
	ErrAlreadyApplied          = errors.New("ya existe una postulación para esta vacante")
	ErrConflict                = errors.New("conflicto con el estado actual")
)
