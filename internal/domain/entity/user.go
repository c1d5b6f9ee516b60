package entity

import "time"

// Estados de cuenta de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema (cuentadante, aprobador o instructor).
type User struct {
	ID           int64
	Name         string
	Email        string
	Role         Role
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Status       string // active, inactive
	CreatedAt    time.Time
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == UserStatusActive
}
