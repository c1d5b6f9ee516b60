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

// IntakeUseCase registra solicitudes de préstamo y las consulta.
type IntakeUseCase struct {
	txRunner    TxRunner
	requests    repository.RequestRepository
	invalidator StatsInvalidator
	loanDays    int
	log         *logger.Logger
}

// NewIntakeUseCase construye el caso de uso. loanDays es el plazo por defecto
// cuando la solicitud no indica fecha de devolución.
func NewIntakeUseCase(
	txRunner TxRunner,
	requests repository.RequestRepository,
	invalidator StatsInvalidator,
	loanDays int,
	log *logger.Logger,
) *IntakeUseCase {
	if loanDays <= 0 {
		loanDays = 30
	}
	return &IntakeUseCase{
		txRunner:    txRunner,
		requests:    requests,
		invalidator: invalidator,
		loanDays:    loanDays,
		log:         log,
	}
}

// Create valida la entrada y persiste una solicitud Pendiente sobre un bien disponible.
// El bien no cambia de estado hasta la aprobación.
func (uc *IntakeUseCase) Create(ctx context.Context, actor Actor, in dto.CreateRequestRequest) (_ *dto.RequestResponse, err error) {
	if in.AssetID == nil || *in.AssetID <= 0 {
		return nil, domain.Invalid("asset_id es requerido para solicitudes de bienes")
	}
	applicant := firstNonEmpty(strings.TrimSpace(in.ApplicantName), actor.Name)
	if applicant == "" {
		return nil, domain.Invalid("applicant_name es requerido")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.Invalid("reason es requerido")
	}
	priority := strings.TrimSpace(in.Priority)
	if priority != "" && !entity.IsValidPriority(priority) {
		return nil, domain.Invalid(fmt.Sprintf("prioridad inválida: %s (Leve, Media, Importante, Alta)", priority))
	}
	expected, perr := dto.ParseDate(in.ExpectedReturnDate)
	if perr != nil {
		return nil, domain.Invalid("expected_return_date debe tener formato YYYY-MM-DD")
	}

	now := time.Now()
	today := entity.DateOnly(now)
	if expected == nil {
		d := today.AddDate(0, 0, uc.loanDays)
		expected = &d
	} else if entity.DayBefore(*expected, today) {
		return nil, domain.Invalid("expected_return_date no puede ser anterior a la fecha de solicitud")
	}

	ctx, done := track(ctx, "create_request", attribute.Int64("asset.id", *in.AssetID))
	defer func() { done(err) }()

	req := entity.NewRequest(*in.AssetID, applicant, strings.TrimSpace(in.ApplicantPosition), reason, priority, now)
	req.ExpectedReturnDate = expected
	req.Notes = strings.TrimSpace(in.Notes)

	err = uc.txRunner.Run(ctx, func(
		assets repository.AssetRepository,
		requests repository.RequestRepository,
		_ repository.MovementRepository,
	) error {
		asset, err := assets.GetForUpdate(ctx, req.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrAssetNotFound
		}
		if !asset.IsAvailable() {
			return domain.NewRuleError(domain.ErrAssetNotAvailable, fmt.Sprintf(
				"El bien \"%s\" (S/N: %s) no está disponible. Estado actual: %s",
				asset.Name, asset.SerialNumber, asset.Status,
			))
		}
		return requests.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	invalidate(uc.invalidator)
	uc.log.Info().Int64("request_id", req.ID).Int64("asset_id", req.AssetID).
		Str("applicant", req.ApplicantName).Msg("solicitud registrada")
	out := dto.ToRequestResponse(req)
	return &out, nil
}

// List retorna todas las solicitudes con los datos del bien, más recientes primero.
func (uc *IntakeUseCase) List(ctx context.Context) ([]dto.RequestResponse, error) {
	rows, err := uc.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequestResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToRequestListItem(r))
	}
	return out, nil
}

// GetByID obtiene una solicitud.
func (uc *IntakeUseCase) GetByID(ctx context.Context, id int64) (*dto.RequestResponse, error) {
	req, err := uc.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrRequestNotFound
	}
	out := dto.ToRequestResponse(req)
	return &out, nil
}
