package entity

import "time"

// Session representa una sesión persistida. El ID es un identificador opaco
// aleatorio (UUID), no un token firmado: la rotación del secreto de firma no
// invalida las sesiones vigentes.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired indica si la sesión ya venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
