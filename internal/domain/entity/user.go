package entity

import "time"

// Roles válidos para User.
const (
	RoleJobSeeker = "job_seeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

// User representa un usuario de la plataforma (candidato, empleador o admin).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Phone        string // destino de las notificaciones SMS
	Role         string // job_seeker, employer, admin
	Verified     bool   // solo relevante para employer: habilitado para publicar vacantes
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanManageJobs indica si el usuario puede publicar y gestionar vacantes.
// Un employer debe estar verificado por un admin; el admin siempre puede.
func (u *User) CanManageJobs() bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == RoleEmployer && u.Verified
}

// IsValidRole verifica que el rol sea uno de los soportados.
func IsValidRole(role string) bool {
	switch role {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}
