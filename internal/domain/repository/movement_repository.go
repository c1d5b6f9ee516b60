package repository

import (
	"context"

	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para el historial de movimientos.
type MovementFilter struct {
	AssetID int64  // 0 = todos
	Type    string // "" = todos
}

// MovementWithAsset movimiento con los datos del bien.
type MovementWithAsset struct {
	entity.Movement
	Asset AssetSummary
}

// MovementRepository define el puerto de persistencia para movimientos de bienes.
// Es de sólo inserción: no existen actualizaciones ni borrados.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*MovementWithAsset, error)
	List(ctx context.Context, filter MovementFilter) ([]MovementWithAsset, error)
}
