package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetRequest body para POST /api/assets.
type CreateAssetRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	SerialNumber    string           `json:"serial_number"`
	InventoryNumber string           `json:"inventory_number"`
	Brand           string           `json:"brand,omitempty"`
	Model           string           `json:"model,omitempty"`
	Category        string           `json:"category,omitempty"`
	Condition       string           `json:"condition,omitempty"`
	Location        string           `json:"location,omitempty"`
	PurchaseDate    string           `json:"purchase_date,omitempty"`   // YYYY-MM-DD
	WarrantyExpiry  string           `json:"warranty_expiry,omitempty"` // YYYY-MM-DD
	PurchasePrice   *decimal.Decimal `json:"purchase_price,omitempty"`
	CurrentValue    *decimal.Decimal `json:"current_value,omitempty"`
	Status          string           `json:"status,omitempty"` // por defecto Available
}

// AssetResponse salida de un bien con su custodia vigente.
type AssetResponse struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	SerialNumber       string           `json:"serial_number"`
	InventoryNumber    string           `json:"inventory_number"`
	Brand              string           `json:"brand"`
	Model              string           `json:"model"`
	Category           string           `json:"category"`
	Condition          string           `json:"condition"`
	Location           string           `json:"location"`
	PurchaseDate       *string          `json:"purchase_date"`
	WarrantyExpiry     *string          `json:"warranty_expiry"`
	PurchasePrice      *decimal.Decimal `json:"purchase_price"`
	CurrentValue       *decimal.Decimal `json:"current_value"`
	Status             string           `json:"status"`
	AssignedTo         *string          `json:"assigned_to"`
	AssignmentDate     *time.Time       `json:"assignment_date"`
	ExpectedReturnDate *string          `json:"expected_return_date"`
	CurrentRequestID   *int64           `json:"current_request_id"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ReturnAssetRequest body para PUT /api/assets/:id/return.
type ReturnAssetRequest struct {
	ReturnedBy string `json:"returned_by,omitempty"` // por defecto el usuario autenticado
	Notes      string `json:"notes,omitempty"`
}

// MaintenanceRequest body para PUT /api/assets/:id/maintenance y /repair.
type MaintenanceRequest struct {
	AuthorizedBy string `json:"authorized_by,omitempty"` // por defecto el usuario autenticado
	Reason       string `json:"reason,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// AssetActionResponse respuesta de devolución, mantenimiento o reparación.
type AssetActionResponse struct {
	Message string        `json:"message"`
	Asset   AssetResponse `json:"asset"`
}
