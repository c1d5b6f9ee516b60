package repository

import (
	"context"

	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
)

// AssetRepository define el puerto de persistencia para Asset (DIP).
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id int64) (*entity.Asset, error)
	// GetForUpdate bloquea la fila del bien hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Asset, error)
	// List retorna todos los bienes ordenados por nombre.
	List(ctx context.Context) ([]*entity.Asset, error)
	// UpdateCustody persiste estado y custodia (assigned_to, fechas, solicitud).
	UpdateCustody(ctx context.Context, asset *entity.Asset) error
}
