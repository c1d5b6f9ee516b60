package repository

import (
	"context"
	"time"

	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
)

// AssetSummary descriptores del bien que acompañan a solicitudes y movimientos en los listados.
type AssetSummary struct {
	Name            string
	SerialNumber    string
	InventoryNumber string
	Brand           string
	Model           string
	Category        string
	Status          string
	Location        string
	Condition       string
}

// RequestWithAsset solicitud con los datos del bien solicitado.
type RequestWithAsset struct {
	entity.Request
	Asset AssetSummary
}

// RequestRepository define el puerto de persistencia para Request.
type RequestRepository interface {
	Create(ctx context.Context, req *entity.Request) error
	GetByID(ctx context.Context, id int64) (*entity.Request, error)
	// GetForUpdate bloquea la fila de la solicitud hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Request, error)
	// List retorna todas las solicitudes con su bien, más recientes primero.
	List(ctx context.Context) ([]RequestWithAsset, error)
	// UpdateDecision persiste estado, decisiones por rol y campos de aprobación/rechazo.
	UpdateDecision(ctx context.Context, req *entity.Request) error
	// SetActualReturnDate marca la devolución efectiva de la solicitud.
	SetActualReturnDate(ctx context.Context, id int64, date time.Time) error
	// FindOpenApprovedByAsset retorna la solicitud aprobada más reciente del bien
	// sin fecha de devolución, o nil si no hay.
	FindOpenApprovedByAsset(ctx context.Context, assetID int64) (*entity.Request, error)
}
