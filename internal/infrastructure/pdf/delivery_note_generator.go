// Package pdf implementa la generación de la nota de entrega (POD).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sucursal  │  N° Consignación + Fecha de entrega    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENVÍO: Cliente / Artículo / Cantidad / Tarifa aplicada     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPTOR: Nombre + Documento + Firma capturada             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EVIDENCIA: Digest del manifiesto C14N                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appdelivery "github.com/jhoicas/Despacho-api/internal/application/delivery"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appdelivery.DeliveryNoteGenerator = (*MarotoNoteGenerator)(nil)

// MarotoNoteGenerator implementa delivery.DeliveryNoteGenerator usando Maroto v2.
type MarotoNoteGenerator struct{}

// NewMarotoNoteGenerator construye el generador.
func NewMarotoNoteGenerator() *MarotoNoteGenerator { return &MarotoNoteGenerator{} }

// Generate genera el PDF de la nota de entrega y devuelve sus bytes.
func (g *MarotoNoteGenerator) Generate(data appdelivery.DeliveryNoteData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de Entrega", true).
		WithAuthor(data.BranchName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shipmentRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(receiverRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(evidenceRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: sucursal (izq) y consignación + fecha (der).
func headerRow(data appdelivery.DeliveryNoteData) core.Row {
	fecha := data.DeliveredAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.BranchName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Nota de entrega", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("GUÍA DE DESPACHO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.ConsignmentNo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Entregado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// shipmentRow: datos del envío.
func shipmentRow(data appdelivery.DeliveryNoteData) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DEL ENVÍO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Cliente: %s   |   Artículo: %s", data.CustomerName, data.ArticleName),
				props.Text{Size: 9, Top: 6}),
			text.New(fmt.Sprintf("Cantidad: %d   |   Tarifa aplicada: $%s", data.Quantity, data.AppliedRate.StringFixed(2)),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// receiverRows: receptor + imagen de la firma capturada.
func receiverRows(data appdelivery.DeliveryNoteData) []core.Row {
	rows := []core.Row{
		row.New(12).Add(
			col.New(12).Add(
				text.New("RECIBIDO POR", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(fmt.Sprintf("%s   |   Documento: %s", data.ReceiverName, nonEmpty(data.ReceiverDocument, "—")),
					props.Text{Size: 9, Top: 7}),
			),
		),
	}
	if len(data.SignaturePNG) > 0 {
		rows = append(rows, row.New(30).Add(
			col.New(4).Add(
				image.NewFromBytes(data.SignaturePNG, extension.Png, props.Rect{
					Center: true, Percent: 90,
				}),
			),
			col.New(8).Add(
				text.New("Firma del receptor", props.Text{Size: 8, Top: 25, Color: colorGray}),
			),
		))
	}
	return rows
}

// evidenceRow: digest del manifiesto para verificación posterior.
func evidenceRow(data appdelivery.DeliveryNoteData) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EVIDENCIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Digest del manifiesto (SHA-256): "+data.ManifestDigest,
				props.Text{Size: 7, Top: 7, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
