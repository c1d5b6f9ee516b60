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

// Roles que pueden decidir en el flujo de aprobador único.
var singleApproverRoles = []entity.Role{entity.RoleCuentadante, entity.RoleAdministrador}

// ApproveInput datos de aprobación en el flujo de aprobador único.
type ApproveInput struct {
	ApprovedBy string
	Notes      string
}

// RejectInput datos de rechazo en el flujo de aprobador único.
type RejectInput struct {
	RejectedBy string
	Reason     string
}

// ApprovalUseCase decide solicitudes Pendiente: aprobador único o aprobación por roles.
// Cada transición corre en una transacción que bloquea bien y solicitud (en ese orden).
type ApprovalUseCase struct {
	txRunner    TxRunner
	invalidator StatsInvalidator
	loanDays    int
	log         *logger.Logger
}

// NewApprovalUseCase construye el caso de uso.
func NewApprovalUseCase(txRunner TxRunner, invalidator StatsInvalidator, loanDays int, log *logger.Logger) *ApprovalUseCase {
	if loanDays <= 0 {
		loanDays = 30
	}
	return &ApprovalUseCase{txRunner: txRunner, invalidator: invalidator, loanDays: loanDays, log: log}
}

// Approve aprueba la solicitud, asigna el bien al solicitante y registra el movimiento ASSIGNMENT.
func (uc *ApprovalUseCase) Approve(ctx context.Context, actor Actor, id int64, in ApproveInput) (_ *dto.RequestResponse, err error) {
	if err := authorize(actor, singleApproverRoles...); err != nil {
		return nil, err
	}
	approvedBy := firstNonEmpty(strings.TrimSpace(in.ApprovedBy), actor.Name)
	if approvedBy == "" {
		return nil, domain.Invalid("approved_by es requerido")
	}

	ctx, done := track(ctx, "approve", attribute.Int64("request.id", id))
	defer func() { done(err) }()

	var result *entity.Request
	err = uc.txRunner.Run(ctx, func(
		assets repository.AssetRepository,
		requests repository.RequestRepository,
		movements repository.MovementRepository,
	) error {
		req, asset, err := lockRequestAndAsset(ctx, assets, requests, id)
		if err != nil {
			return err
		}
		if req.IsTerminal() {
			return domain.ErrAlreadyProcessed
		}
		if req.Approvals.Started() {
			return domain.NewRuleError(domain.ErrConflict, "La solicitud está en aprobación por roles")
		}
		if !asset.IsAvailable() {
			return domain.ErrAssetNotAvailable
		}

		now := time.Now()
		notes := strings.TrimSpace(in.Notes)
		req.Approve(approvedBy, notes, now)
		if err := requests.UpdateDecision(ctx, req); err != nil {
			return err
		}
		if err := uc.assign(ctx, assets, movements, asset, req, approvedBy, notes, now); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(uc.invalidator)
	uc.log.Info().Int64("request_id", id).Int64("asset_id", result.AssetID).
		Str("approved_by", approvedBy).Msg("solicitud aprobada")
	out := dto.ToRequestResponse(result)
	return &out, nil
}

// Reject rechaza la solicitud. El bien no se modifica.
func (uc *ApprovalUseCase) Reject(ctx context.Context, actor Actor, id int64, in RejectInput) (_ *dto.RequestResponse, err error) {
	if err := authorize(actor, singleApproverRoles...); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.Invalid("rejection_reason es requerido")
	}
	rejectedBy := firstNonEmpty(strings.TrimSpace(in.RejectedBy), actor.Name)

	ctx, done := track(ctx, "reject", attribute.Int64("request.id", id))
	defer func() { done(err) }()

	var result *entity.Request
	err = uc.txRunner.Run(ctx, func(
		_ repository.AssetRepository,
		requests repository.RequestRepository,
		_ repository.MovementRepository,
	) error {
		req, err := requests.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrRequestNotFound
		}
		if req.IsTerminal() {
			return domain.ErrAlreadyProcessed
		}
		if req.Approvals.Started() {
			return domain.NewRuleError(domain.ErrConflict, "La solicitud está en aprobación por roles")
		}
		req.Reject(rejectedBy, reason, time.Now())
		if err := requests.UpdateDecision(ctx, req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(uc.invalidator)
	uc.log.Info().Int64("request_id", id).Str("rejected_by", rejectedBy).Msg("solicitud rechazada")
	out := dto.ToRequestResponse(result)
	return &out, nil
}

// ApproveAsRole registra la aprobación del rol del actor. Cuando los cuatro roles aprobaron,
// el bien se asigna al solicitante en la misma transacción.
func (uc *ApprovalUseCase) ApproveAsRole(ctx context.Context, actor Actor, id int64, roleName, notes string) (_ *dto.RequestResponse, err error) {
	role, err := uc.resolveRole(actor, roleName)
	if err != nil {
		return nil, err
	}

	ctx, done := track(ctx, "approve_role",
		attribute.Int64("request.id", id), attribute.String("role", string(role)))
	defer func() { done(err) }()

	var result *entity.Request
	err = uc.txRunner.Run(ctx, func(
		assets repository.AssetRepository,
		requests repository.RequestRepository,
		movements repository.MovementRepository,
	) error {
		req, asset, err := lockRequestAndAsset(ctx, assets, requests, id)
		if err != nil {
			return err
		}
		if req.IsTerminal() {
			return domain.ErrAlreadyProcessed
		}
		if req.Approvals.Get(role) != entity.RequestStatusPending {
			return domain.ErrRoleAlreadyDecided
		}

		now := time.Now()
		if n := strings.TrimSpace(notes); n != "" {
			req.Notes = n
		}
		final := req.DecideAsRole(role, entity.RequestStatusApproved, actor.Name, "", now)
		if final == entity.RequestStatusApproved && !asset.IsAvailable() {
			return domain.ErrAssetNotAvailable
		}
		if err := requests.UpdateDecision(ctx, req); err != nil {
			return err
		}
		if final == entity.RequestStatusApproved {
			if err := uc.assign(ctx, assets, movements, asset, req, actor.Name, req.Notes, now); err != nil {
				return err
			}
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(uc.invalidator)
	uc.log.Info().Int64("request_id", id).Str("role", string(role)).
		Str("final_status", result.Status).Msg("aprobación por rol registrada")
	out := dto.ToRequestResponse(result)
	return &out, nil
}

// RejectAsRole registra el rechazo del rol del actor; la solicitud queda Rechazada de inmediato.
func (uc *ApprovalUseCase) RejectAsRole(ctx context.Context, actor Actor, id int64, roleName, reason string) (_ *dto.RequestResponse, err error) {
	role, err := uc.resolveRole(actor, roleName)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.Invalid("rejection_reason es requerido")
	}

	ctx, done := track(ctx, "reject_role",
		attribute.Int64("request.id", id), attribute.String("role", string(role)))
	defer func() { done(err) }()

	var result *entity.Request
	err = uc.txRunner.Run(ctx, func(
		_ repository.AssetRepository,
		requests repository.RequestRepository,
		_ repository.MovementRepository,
	) error {
		req, err := requests.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrRequestNotFound
		}
		if req.IsTerminal() {
			return domain.ErrAlreadyProcessed
		}
		if req.Approvals.Get(role) != entity.RequestStatusPending {
			return domain.ErrRoleAlreadyDecided
		}
		req.DecideAsRole(role, entity.RequestStatusRejected, actor.Name, reason, time.Now())
		if err := requests.UpdateDecision(ctx, req); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(uc.invalidator)
	uc.log.Info().Int64("request_id", id).Str("role", string(role)).Msg("rechazo por rol registrado")
	out := dto.ToRequestResponse(result)
	return &out, nil
}

// resolveRole valida el rol recibido y que coincida con el del actor.
func (uc *ApprovalUseCase) resolveRole(actor Actor, roleName string) (entity.Role, error) {
	role, ok := entity.ParseRole(roleName)
	if !ok {
		return "", domain.Invalid(fmt.Sprintf("rol inválido: %s", roleName))
	}
	if !role.IsApprover() || actor.Role != role {
		return "", domain.ErrForbidden
	}
	return role, nil
}

// assign entrega el bien al solicitante y registra el movimiento ASSIGNMENT.
func (uc *ApprovalUseCase) assign(
	ctx context.Context,
	assets repository.AssetRepository,
	movements repository.MovementRepository,
	asset *entity.Asset,
	req *entity.Request,
	authorizedBy, notes string,
	now time.Time,
) error {
	expected := entity.DateOnly(now).AddDate(0, 0, uc.loanDays)
	if req.ExpectedReturnDate != nil {
		expected = *req.ExpectedReturnDate
	}
	requestID := req.ID
	asset.Assign(req.ApplicantName, now, expected, &requestID)
	if err := assets.UpdateCustody(ctx, asset); err != nil {
		return err
	}
	return movements.Create(ctx, &entity.Movement{
		AssetID:      asset.ID,
		RequestID:    &requestID,
		Type:         entity.MovementTypeAssignment,
		ToPerson:     req.ApplicantName,
		MovementDate: now,
		Reason:       fmt.Sprintf("Solicitud aprobada #%d", req.ID),
		AuthorizedBy: authorizedBy,
		Notes:        notes,
	})
}

// lockRequestAndAsset bloquea el bien y luego la solicitud. La devolución usa el mismo orden.
func lockRequestAndAsset(
	ctx context.Context,
	assets repository.AssetRepository,
	requests repository.RequestRepository,
	id int64,
) (*entity.Request, *entity.Asset, error) {
	peek, err := requests.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if peek == nil {
		return nil, nil, domain.ErrRequestNotFound
	}
	asset, err := assets.GetForUpdate(ctx, peek.AssetID)
	if err != nil {
		return nil, nil, err
	}
	if asset == nil {
		return nil, nil, domain.ErrAssetNotFound
	}
	req, err := requests.GetForUpdate(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if req == nil {
		return nil, nil, domain.ErrRequestNotFound
	}
	return req, asset, nil
}
