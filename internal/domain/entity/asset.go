package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un bien.
const (
	AssetStatusAvailable   = "Available"
	AssetStatusAssigned    = "Assigned"
	AssetStatusMaintenance = "Maintenance"
	AssetStatusRetired     = "Retired"
)

// Valores por defecto al registrar un bien.
const (
	DefaultAssetCategory  = "Electronics"
	DefaultAssetCondition = "New"
)

// Assignment es la custodia vigente de un bien asignado.
type Assignment struct {
	AssignedTo         string
	AssignmentDate     time.Time
	ExpectedReturnDate time.Time
	RequestID          *int64 // solicitud que originó la asignación
}

// Asset representa un bien físico bajo custodia del cuentadante.
type Asset struct {
	ID              int64
	Name            string
	Description     string
	SerialNumber    string // único
	InventoryNumber string // único
	Brand           string
	Model           string
	Category        string
	Condition       string
	Location        string
	PurchaseDate    *time.Time
	WarrantyExpiry  *time.Time
	PurchasePrice   *decimal.Decimal
	CurrentValue    *decimal.Decimal
	Status          string
	Assignment      *Assignment // nil salvo cuando Status == Assigned
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsValidAssetStatus indica si s es un estado de bien conocido.
func IsValidAssetStatus(s string) bool {
	switch s {
	case AssetStatusAvailable, AssetStatusAssigned, AssetStatusMaintenance, AssetStatusRetired:
		return true
	}
	return false
}

// IsAvailable indica si el bien puede comprometerse en una solicitud.
func (a *Asset) IsAvailable() bool {
	return a.Status == AssetStatusAvailable
}

// Assign entrega el bien en custodia a person.
func (a *Asset) Assign(person string, at, expectedReturn time.Time, requestID *int64) {
	a.Status = AssetStatusAssigned
	a.Assignment = &Assignment{
		AssignedTo:         person,
		AssignmentDate:     at,
		ExpectedReturnDate: expectedReturn,
		RequestID:          requestID,
	}
	a.UpdatedAt = at
}

// Release devuelve el bien a Available y limpia la custodia. Retorna la custodia anterior.
func (a *Asset) Release(at time.Time) *Assignment {
	prev := a.Assignment
	a.Status = AssetStatusAvailable
	a.Assignment = nil
	a.UpdatedAt = at
	return prev
}

// HasConsistentAssignment verifica que la custodia exista sólo cuando el bien está asignado.
func (a *Asset) HasConsistentAssignment() bool {
	if a.Status != AssetStatusAssigned {
		return a.Assignment == nil
	}
	return a.Assignment != nil &&
		a.Assignment.AssignedTo != "" &&
		!a.Assignment.AssignmentDate.IsZero() &&
		!a.Assignment.ExpectedReturnDate.IsZero()
}

// AssignedTo retorna el custodio actual o "" si no hay asignación.
func (a *Asset) AssignedTo() string {
	if a.Assignment == nil {
		return ""
	}
	return a.Assignment.AssignedTo
}
