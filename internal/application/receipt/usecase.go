package receipt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

// UseCase arma el acta de un movimiento y delega el dibujo al Generator.
type UseCase struct {
	movements   repository.MovementRepository
	generator   Generator
	institution string
}

// NewUseCase construye el caso de uso. institution encabeza cada acta.
func NewUseCase(movements repository.MovementRepository, generator Generator, institution string) *UseCase {
	if institution == "" {
		institution = "SENA"
	}
	return &UseCase{movements: movements, generator: generator, institution: institution}
}

// Download genera el acta del movimiento.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrMovementNotFound si el movimiento no existe.
func (uc *UseCase) Download(ctx context.Context, movementID int64) (pdfBytes []byte, filename string, err error) {
	m, err := uc.movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, "", fmt.Errorf("acta: obtener movimiento: %w", err)
	}
	if m == nil {
		return nil, "", domain.ErrMovementNotFound
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, Document{
		Title:       Title(m.Type),
		Institution: uc.institution,
		IssuedAt:    time.Now(),
		Movement:    *m,
	})
	if err != nil {
		return nil, "", fmt.Errorf("acta: generación fallida: %w", err)
	}
	return pdfBytes, Filename(m.Movement), nil
}

// Title retorna el título del acta según el tipo de movimiento.
func Title(movementType string) string {
	switch movementType {
	case entity.MovementTypeAssignment:
		return "ACTA DE ENTREGA DE BIEN"
	case entity.MovementTypeReturn:
		return "ACTA DE DEVOLUCIÓN DE BIEN"
	case entity.MovementTypeMaintenance:
		return "ORDEN DE MANTENIMIENTO"
	case entity.MovementTypeRepair:
		return "CONSTANCIA DE REPARACIÓN"
	default:
		return "ACTA DE MOVIMIENTO"
	}
}

// Filename nombre sugerido del archivo, p. ej. acta_assignment_42.pdf.
func Filename(m entity.Movement) string {
	return fmt.Sprintf("acta_%s_%d.pdf", strings.ToLower(m.Type), m.ID)
}
