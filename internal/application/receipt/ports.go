// Package receipt genera actas de custodia en PDF a partir de los movimientos de bienes.
package receipt

import (
	"context"
	"time"

	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

// Document contiene todo lo necesario para dibujar un acta.
type Document struct {
	Title       string
	Institution string
	IssuedAt    time.Time
	Movement    repository.MovementWithAsset
}

// Generator define el puerto de generación del PDF del acta.
type Generator interface {
	GenerateReceiptPDF(ctx context.Context, doc Document) ([]byte, error)
}
