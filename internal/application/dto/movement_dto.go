package dto

import "time"

// MovementResponse salida de un movimiento con los datos del bien.
type MovementResponse struct {
	ID             int64     `json:"id"`
	AssetID        int64     `json:"asset_id"`
	RequestID      *int64    `json:"request_id"`
	MovementType   string    `json:"movement_type"`
	FromPerson     string    `json:"from_person"`
	ToPerson       string    `json:"to_person"`
	MovementDate   time.Time `json:"movement_date"`
	Reason         string    `json:"reason"`
	AuthorizedBy   string    `json:"authorized_by"`
	Notes          string    `json:"notes"`
	AssetName      string    `json:"asset_name"`
	AssetSerial    string    `json:"asset_serial"`
	AssetInventory string    `json:"asset_inventory"`
	AssetBrand     string    `json:"asset_brand"`
	AssetModel     string    `json:"asset_model"`
}

// MovementListQuery filtros de GET /api/movements.
type MovementListQuery struct {
	AssetID int64  `query:"asset_id"`
	Type    string `query:"type"`
}
