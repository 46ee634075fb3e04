package repository

import (
	"context"

	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para Session (DIP).
// Existe a lo sumo una fila por id; Delete es idempotente (borrar una sesión
// inexistente no es error), lo que hace benigna la carrera de limpieza
// perezosa entre validaciones concurrentes de una sesión ya vencida.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
