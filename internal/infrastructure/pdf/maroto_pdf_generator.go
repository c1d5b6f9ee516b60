// Package pdf dibuja las actas de custodia de bienes con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Institución + título  │  N° acta + fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BIEN: nombre / serie / inventario / marca / modelo          │
//	│  MOVIMIENTO: tipo / de / para / motivo / notas               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: entrega │ recibe                                    │
//	│  QR de verificación + leyenda                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/cuentadante-api/internal/application/receipt"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

var _ receipt.Generator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 57, Green: 169, Blue: 0} // verde institucional
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa receipt.Generator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReceiptPDF genera el acta y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, doc receipt.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Institution, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(assetRows(doc.Movement)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(movementRows(doc.Movement)...)

	m.AddRows(row.New(20))
	m.AddRows(signatureRow(doc.Movement))
	m.AddRows(row.New(8))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: institución + título (izq) y N° de acta + fecha (der).
func headerRow(doc receipt.Document) core.Row {
	return row.New(20).Add(
		col.New(8).Add(
			text.New(doc.Institution, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 9,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Acta N° %06d", doc.Movement.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+doc.Movement.MovementDate.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Emitida: "+doc.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// assetRows: datos del bien.
func assetRows(m repository.MovementWithAsset) []core.Row {
	a := m.Asset
	return []core.Row{
		sectionTitle("DATOS DEL BIEN"),
		field("Bien", a.Name),
		field("N° de serie", a.SerialNumber),
		field("N° de inventario", a.InventoryNumber),
		field("Marca / Modelo", nonEmpty(a.Brand, "—")+" / "+nonEmpty(a.Model, "—")),
		field("Categoría", nonEmpty(a.Category, "—")),
		field("Ubicación", nonEmpty(a.Location, "—")),
	}
}

// movementRows: datos del movimiento.
func movementRows(m repository.MovementWithAsset) []core.Row {
	rows := []core.Row{
		sectionTitle("DATOS DEL MOVIMIENTO"),
		field("Tipo", m.Type),
	}
	if m.RequestID != nil {
		rows = append(rows, field("Solicitud", fmt.Sprintf("#%d", *m.RequestID)))
	}
	rows = append(rows,
		field("Entregado por", nonEmpty(m.FromPerson, "—")),
		field("Recibido por", nonEmpty(m.ToPerson, "—")),
		field("Autorizado por", nonEmpty(m.AuthorizedBy, "—")),
		field("Motivo", nonEmpty(m.Reason, "—")),
	)
	if m.Notes != "" {
		rows = append(rows, field("Observaciones", m.Notes))
	}
	return rows
}

// signatureRow: dos espacios de firma; quién entrega y quién recibe depende del tipo.
func signatureRow(m repository.MovementWithAsset) core.Row {
	left, right := signers(m)
	sig := func(role, name string) core.Col {
		return col.New(6).Add(
			text.New("_______________________________", props.Text{Size: 9, Align: align.Center}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 6}),
			text.New(role, props.Text{Size: 8, Align: align.Center, Top: 11, Color: colorGray}),
		)
	}
	return row.New(18).Add(sig(left[0], left[1]), sig(right[0], right[1]))
}

// footerRow: QR con la referencia del acta + leyenda.
func footerRow(doc receipt.Document) core.Row {
	ref := fmt.Sprintf("CUENTADANTE|MOV:%d|TIPO:%s|SERIE:%s|INV:%s",
		doc.Movement.ID, doc.Movement.Type,
		doc.Movement.Asset.SerialNumber, doc.Movement.Asset.InventoryNumber)
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Referencia del acta:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3}),
			text.New(ref, props.Text{Size: 7, Top: 9, Left: 3, Color: colorGray}),
			text.New(
				"El custodio se compromete a usar el bien para los fines institucionales "+
					"y a devolverlo en la fecha pactada en el mismo estado en que lo recibió.",
				props.Text{Size: 7, Top: 18, Left: 3, Color: colorGray},
			),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3}),
	))
}

func field(label, value string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(8).Add(text.New(value, props.Text{Size: 8, Top: 1})),
	)
}

// signers retorna {rol, nombre} de quien entrega (izq) y quien recibe (der).
func signers(m repository.MovementWithAsset) (left, right [2]string) {
	switch m.Type {
	case entity.MovementTypeAssignment:
		return [2]string{"Entrega (cuentadante)", m.AuthorizedBy}, [2]string{"Recibe (custodio)", m.ToPerson}
	case entity.MovementTypeReturn:
		return [2]string{"Entrega (custodio)", m.FromPerson}, [2]string{"Recibe (cuentadante)", m.AuthorizedBy}
	default:
		return [2]string{"Autoriza", m.AuthorizedBy}, [2]string{"Responsable de mantenimiento", ""}
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
