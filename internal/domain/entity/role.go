package entity

import "strings"

// Role es el rol de un usuario dentro del flujo de préstamo de bienes.
type Role string

// Roles válidos para User.
const (
	RoleCuentadante   Role = "Cuentadante"
	RoleGerente       Role = "Gerente"
	RoleAdministrador Role = "Administrador"
	RoleCelador       Role = "Celador"
	RoleInstructor    Role = "Instructor"
)

// ParseRole normaliza un rol recibido en minúsculas o con otra capitalización.
func ParseRole(s string) (Role, bool) {
	switch normalizeRole(s) {
	case "cuentadante":
		return RoleCuentadante, true
	case "gerente":
		return RoleGerente, true
	case "administrador":
		return RoleAdministrador, true
	case "celador":
		return RoleCelador, true
	case "instructor":
		return RoleInstructor, true
	}
	return "", false
}

// IsApprover indica si el rol participa en el flujo de aprobación por roles.
func (r Role) IsApprover() bool {
	switch r {
	case RoleCuentadante, RoleGerente, RoleAdministrador, RoleCelador:
		return true
	}
	return false
}

func normalizeRole(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RoleApprovals es el registro fijo de decisiones de los cuatro roles aprobadores.
type RoleApprovals struct {
	Cuentadante   string `json:"cuentadante"`
	Gerente       string `json:"gerente"`
	Administrador string `json:"administrador"`
	Celador       string `json:"celador"`
}

// NewRoleApprovals retorna un registro con todos los roles en Pendiente.
func NewRoleApprovals() RoleApprovals {
	return RoleApprovals{
		Cuentadante:   RequestStatusPending,
		Gerente:       RequestStatusPending,
		Administrador: RequestStatusPending,
		Celador:       RequestStatusPending,
	}
}

// Get retorna la decisión registrada para role.
func (a RoleApprovals) Get(role Role) string {
	switch role {
	case RoleCuentadante:
		return a.Cuentadante
	case RoleGerente:
		return a.Gerente
	case RoleAdministrador:
		return a.Administrador
	case RoleCelador:
		return a.Celador
	}
	return ""
}

// Set registra la decisión de role. Roles no aprobadores se ignoran.
func (a *RoleApprovals) Set(role Role, decision string) {
	switch role {
	case RoleCuentadante:
		a.Cuentadante = decision
	case RoleGerente:
		a.Gerente = decision
	case RoleAdministrador:
		a.Administrador = decision
	case RoleCelador:
		a.Celador = decision
	}
}

// FinalStatus deriva el estado de la solicitud: cualquier rechazo rechaza,
// la aprobación exige a todos los roles.
func (a RoleApprovals) FinalStatus() string {
	entries := [...]string{a.Cuentadante, a.Gerente, a.Administrador, a.Celador}
	approved := 0
	for _, e := range entries {
		switch e {
		case RequestStatusRejected:
			return RequestStatusRejected
		case RequestStatusApproved:
			approved++
		}
	}
	if approved == len(entries) {
		return RequestStatusApproved
	}
	return RequestStatusPending
}

// Started indica si algún rol ya registró una decisión.
func (a RoleApprovals) Started() bool {
	return a.Cuentadante != RequestStatusPending ||
		a.Gerente != RequestStatusPending ||
		a.Administrador != RequestStatusPending ||
		a.Celador != RequestStatusPending
}
