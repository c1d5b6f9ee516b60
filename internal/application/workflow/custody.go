package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
	"github.com/jhoicas/cuentadante-api/pkg/logger"
)

// Roles que pueden recibir devoluciones y mover bienes a mantenimiento.
var custodyRoles = []entity.Role{entity.RoleCuentadante, entity.RoleAdministrador}

// ReturnInput datos de la devolución de un bien.
type ReturnInput struct {
	ReturnedBy string
	Notes      string
}

// MaintenanceInput datos de envío a mantenimiento o cierre de reparación.
type MaintenanceInput struct {
	AuthorizedBy string
	Reason       string
	Notes        string
}

// CustodyUseCase procesa devoluciones y el ciclo de mantenimiento de los bienes.
type CustodyUseCase struct {
	txRunner    TxRunner
	invalidator StatsInvalidator
	log         *logger.Logger
}

// NewCustodyUseCase construye el caso de uso.
func NewCustodyUseCase(txRunner TxRunner, invalidator StatsInvalidator, log *logger.Logger) *CustodyUseCase {
	return &CustodyUseCase{txRunner: txRunner, invalidator: invalidator, log: log}
}

// Return libera un bien asignado, cierra la solicitud que lo originó y registra el movimiento RETURN.
func (uc *CustodyUseCase) Return(ctx context.Context, actor Actor, assetID int64, in ReturnInput) (_ *dto.AssetResponse, err error) {
	if err := authorize(actor, custodyRoles...); err != nil {
		return nil, err
	}
	returnedBy := firstNonEmpty(strings.TrimSpace(in.ReturnedBy), actor.Name)

	ctx, done := track(ctx, "return", attribute.Int64("asset.id", assetID))
	defer func() { done(err) }()

	var result *entity.Asset
	err = uc.txRunner.Run(ctx, func(
		assets repository.AssetRepository,
		requests repository.RequestRepository,
		movements repository.MovementRepository,
	) error {
		asset, err := assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrAssetNotFound
		}
		if asset.Status != entity.AssetStatusAssigned {
			return domain.ErrAssetNotAssigned
		}

		now := time.Now()
		prev := asset.Release(now)
		if err := assets.UpdateCustody(ctx, asset); err != nil {
			return err
		}

		// Filas asignadas antes de existir current_request_id: última aprobada sin devolución.
		requestID := prev.RequestID
		if requestID == nil {
			open, err := requests.FindOpenApprovedByAsset(ctx, assetID)
			if err != nil {
				return err
			}
			if open != nil {
				requestID = &open.ID
			}
		}
		if requestID != nil {
			if err := requests.SetActualReturnDate(ctx, *requestID, entity.DateOnly(now)); err != nil {
				return err
			}
		}

		if err := movements.Create(ctx, &entity.Movement{
			AssetID:      assetID,
			RequestID:    requestID,
			Type:         entity.MovementTypeReturn,
			FromPerson:   prev.AssignedTo,
			MovementDate: now,
			Reason:       "Devolución de bien",
			AuthorizedBy: returnedBy,
			Notes:        strings.TrimSpace(in.Notes),
		}); err != nil {
			return err
		}
		result = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(uc.invalidator)
	uc.log.Info().Int64("asset_id", assetID).Str("returned_by", returnedBy).Msg("bien devuelto")
	out := dto.ToAssetResponse(result)
	return &out, nil
}

// SendToMaintenance pasa un bien disponible a mantenimiento y registra el movimiento MAINTENANCE.
func (uc *CustodyUseCase) SendToMaintenance(ctx context.Context, actor Actor, assetID int64, in MaintenanceInput) (*dto.AssetResponse, error) {
	return uc.changeStatus(ctx, actor, assetID, in, statusChange{
		op:       "maintenance",
		from:     entity.AssetStatusAvailable,
		to:       entity.AssetStatusMaintenance,
		movement: entity.MovementTypeMaintenance,
		reason:   "Envío a mantenimiento",
	})
}

// CompleteRepair devuelve a disponible un bien en mantenimiento y registra el movimiento REPAIR.
func (uc *CustodyUseCase) CompleteRepair(ctx context.Context, actor Actor, assetID int64, in MaintenanceInput) (*dto.AssetResponse, error) {
	return uc.changeStatus(ctx, actor, assetID, in, statusChange{
		op:       "repair",
		from:     entity.AssetStatusMaintenance,
		to:       entity.AssetStatusAvailable,
		movement: entity.MovementTypeRepair,
		reason:   "Reparación completada",
	})
}

type statusChange struct {
	op       string
	from     string
	to       string
	movement string
	reason   string
}

func (uc *CustodyUseCase) changeStatus(ctx context.Context, actor Actor, assetID int64, in MaintenanceInput, ch statusChange) (_ *dto.AssetResponse, err error) {
	if err := authorize(actor, custodyRoles...); err != nil {
		return nil, err
	}
	authorizedBy := firstNonEmpty(strings.TrimSpace(in.AuthorizedBy), actor.Name)

	ctx, done := track(ctx, ch.op, attribute.Int64("asset.id", assetID))
	defer func() { done(err) }()

	var result *entity.Asset
	err = uc.txRunner.Run(ctx, func(
		assets repository.AssetRepository,
		_ repository.RequestRepository,
		movements repository.MovementRepository,
	) error {
		asset, err := assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrAssetNotFound
		}
		if asset.Status != ch.from {
			return domain.Invalid(fmt.Sprintf("El bien debe estar en estado %s. Estado actual: %s", ch.from, asset.Status))
		}
		now := time.Now()
		asset.Status = ch.to
		asset.UpdatedAt = now
		if err := assets.UpdateCustody(ctx, asset); err != nil {
			return err
		}
		if err := movements.Create(ctx, &entity.Movement{
			AssetID:      assetID,
			Type:         ch.movement,
			MovementDate: now,
			Reason:       firstNonEmpty(strings.TrimSpace(in.Reason), ch.reason),
			AuthorizedBy: authorizedBy,
			Notes:        strings.TrimSpace(in.Notes),
		}); err != nil {
			return err
		}
		result = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(uc.invalidator)
	uc.log.Info().Int64("asset_id", assetID).Str("status", ch.to).Msg("estado del bien actualizado")
	out := dto.ToAssetResponse(result)
	return &out, nil
}
