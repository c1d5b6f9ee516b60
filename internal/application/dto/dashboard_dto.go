package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalAssets       int64           `json:"total_assets"`
	AvailableAssets   int64           `json:"available_assets"`
	AssignedAssets    int64           `json:"assigned_assets"`
	MaintenanceAssets int64           `json:"maintenance_assets"`
	RetiredAssets     int64           `json:"retired_assets"`
	PendingRequests   int64           `json:"pending_requests"`
	ApprovedRequests  int64           `json:"approved_requests"`
	RejectedRequests  int64           `json:"rejected_requests"`
	TotalRequests     int64           `json:"total_requests"`
	TotalMovements    int64           `json:"total_movements"`
	AvgAssetValue     decimal.Decimal `json:"avg_asset_value"`
	TotalAssetValue   decimal.Decimal `json:"total_asset_value"`
	GeneratedAt       time.Time       `json:"generated_at"`
}

// ExpiringAssetDTO bien asignado con devolución próxima o vencida.
type ExpiringAssetDTO struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	SerialNumber       string    `json:"serial_number"`
	InventoryNumber    string    `json:"inventory_number"`
	Brand              string    `json:"brand"`
	Model              string    `json:"model"`
	Location           string    `json:"location"`
	AssignedTo         string    `json:"assigned_to"`
	AssignmentDate     time.Time `json:"assignment_date"`
	ExpectedReturnDate string    `json:"expected_return_date"`
	ReturnStatus       string    `json:"return_status"` // vencido | por_vencer | en_tiempo
	DaysRemaining      int       `json:"days_remaining"`
}
