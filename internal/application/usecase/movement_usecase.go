package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

// MovementUseCase lectura del historial de movimientos (sólo inserción en el flujo).
type MovementUseCase struct {
	repo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// List retorna los movimientos con datos del bien, más recientes primero.
// Los filtros por bien y por tipo son opcionales.
func (uc *MovementUseCase) List(ctx context.Context, q dto.MovementListQuery) ([]dto.MovementResponse, error) {
	typ := strings.ToUpper(strings.TrimSpace(q.Type))
	if typ != "" && !entity.IsValidMovementType(typ) {
		return nil, domain.Invalid(fmt.Sprintf("tipo de movimiento inválido: %s", q.Type))
	}
	if q.AssetID < 0 {
		return nil, domain.Invalid("asset_id inválido")
	}
	rows, err := uc.repo.List(ctx, repository.MovementFilter{AssetID: q.AssetID, Type: typ})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToMovementResponse(m))
	}
	return out, nil
}

// GetByID obtiene un movimiento.
func (uc *MovementUseCase) GetByID(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMovementNotFound
	}
	out := dto.ToMovementResponse(*m)
	return &out, nil
}
