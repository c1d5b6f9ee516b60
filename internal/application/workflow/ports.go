package workflow

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
	"github.com/jhoicas/cuentadante-api/internal/observability"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Todas las transiciones del flujo de préstamo pasan por aquí.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assets repository.AssetRepository,
		requests repository.RequestRepository,
		movements repository.MovementRepository,
	) error) error
}

// StatsInvalidator descarta agregados del tablero cuando cambia el estado.
type StatsInvalidator interface {
	Invalidate()
}

// Actor es el usuario autenticado que ejecuta una operación.
type Actor struct {
	UserID int64
	Name   string
	Role   entity.Role
}

// authorize exige que el actor tenga alguno de los roles permitidos.
func authorize(actor Actor, allowed ...entity.Role) error {
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

func invalidate(inv StatsInvalidator) {
	if inv != nil {
		inv.Invalidate()
	}
}

// track abre un span y, al cerrarse, cuenta la transición con su resultado.
func track(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := observability.StartSpan(ctx, "workflow."+op, attrs...)
	return ctx, func(err error) {
		observability.WorkflowTransitions.WithLabelValues(op, observability.Outcome(err)).Inc()
		observability.EndSpan(span, err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
