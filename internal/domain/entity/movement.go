package entity

import "time"

// Tipos de movimiento de un bien.
const (
	MovementTypeAssignment  = "ASSIGNMENT"  // entrega en custodia
	MovementTypeReturn      = "RETURN"      // devolución
	MovementTypeMaintenance = "MAINTENANCE" // salida a mantenimiento
	MovementTypeRepair      = "REPAIR"      // regreso de reparación
)

// IsValidMovementType indica si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeAssignment, MovementTypeReturn, MovementTypeMaintenance, MovementTypeRepair:
		return true
	}
	return false
}

// Movement es un registro inmutable de cambio de custodia o estado de un bien.
type Movement struct {
	ID           int64
	AssetID      int64
	RequestID    *int64
	Type         string
	FromPerson   string
	ToPerson     string
	MovementDate time.Time
	Reason       string
	AuthorizedBy string
	Notes        string
}
