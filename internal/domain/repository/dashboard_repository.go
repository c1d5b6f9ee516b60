package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AssetCounts resultado crudo del conteo de bienes por estado.
type AssetCounts struct {
	Total       int64
	Available   int64
	Assigned    int64
	Maintenance int64
	Retired     int64
	AvgValue    decimal.Decimal // promedio de current_value, 0 si no hay bienes valorados
	TotalValue  decimal.Decimal // suma de current_value
}

// RequestCounts resultado crudo del conteo de solicitudes por estado.
type RequestCounts struct {
	Total    int64
	Pending  int64
	Approved int64
	Rejected int64
}

// ExpiringAssetResult bien asignado con su fecha esperada de devolución.
type ExpiringAssetResult struct {
	AssetID            int64
	Name               string
	SerialNumber       string
	InventoryNumber    string
	Brand              string
	Model              string
	Location           string
	AssignedTo         string
	AssignmentDate     time.Time
	ExpectedReturnDate time.Time
}

// DashboardRepository define las consultas de lectura del tablero.
// Las implementaciones son read-only (no modifican datos).
type DashboardRepository interface {
	CountAssets(ctx context.Context) (AssetCounts, error)
	CountRequests(ctx context.Context) (RequestCounts, error)
	CountMovements(ctx context.Context) (int64, error)
	// ListExpiring retorna los bienes asignados cuya devolución esperada es <= until,
	// ordenados por fecha esperada ascendente.
	ListExpiring(ctx context.Context, until time.Time) ([]ExpiringAssetResult, error)
}
