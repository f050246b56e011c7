// Package pdf genera la nota de entrega de un pedido de alquiler.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa            │  N° Pedido + Estado           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + documento + contacto                      │
//	│  PERIODO: Inicio / Devolución esperada / Devolución real     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Código | Equipo | Despachado | Devuelto       │
//	│         (seriales debajo de cada línea)                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL ALQUILER                                          │
//	│  FOOTER: QR con el ID del pedido + firmas                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/rental-inventory-api/internal/application/orders"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006"

var _ orders.DeliveryNotePDFGenerator = (*DeliveryNoteGenerator)(nil)

// DeliveryNoteGenerator implementa orders.DeliveryNotePDFGenerator usando Maroto v2.
type DeliveryNoteGenerator struct {
	issuer string
}

// NewDeliveryNoteGenerator construye el generador; issuer es el nombre que va en el encabezado.
func NewDeliveryNoteGenerator(issuer string) *DeliveryNoteGenerator {
	return &DeliveryNoteGenerator{issuer: issuer}
}

// GenerateDeliveryNotePDF genera el PDF y devuelve sus bytes.
func (g *DeliveryNoteGenerator) GenerateDeliveryNotePDF(
	_ context.Context,
	order *entity.Order,
	customer *entity.Customer,
	lines []orders.DeliveryNoteLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de entrega "+order.ID, true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.issuer, order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(periodRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(issuer string, order *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(issuer, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Alquiler de equipos", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("NOTA DE ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(order.ID), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Estado: "+order.Status, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.DocumentID, "-"),
				nonEmpty(customer.Email, "-"),
				nonEmpty(customer.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func periodRow(order *entity.Order) core.Row {
	returned := "-"
	if order.ActualReturnDate != nil {
		returned = order.ActualReturnDate.Format(dateLayout)
	}
	return row.New(10).Add(
		col.New(4).Add(text.New("Inicio: "+order.StartDate.Format(dateLayout), props.Text{Size: 8, Top: 2})),
		col.New(4).Add(text.New("Devolución esperada: "+order.EndDate.Format(dateLayout), props.Text{Size: 8, Top: 2})),
		col.New(4).Add(text.New("Devolución real: "+returned, props.Text{Size: 8, Top: 2, Align: align.Right})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Código", 2, align.Left),
		h("Equipo", 5, align.Left),
		h("Despachado", 2, align.Center),
		h("Devuelto", 2, align.Center),
	)
}

// itemRows una fila por línea y, si tiene seriales, una fila adicional con ellos.
func itemRows(lines []orders.DeliveryNoteLine) []core.Row {
	result := make([]core.Row, 0, len(lines)*2)
	for _, l := range lines {
		name := l.ProductName
		sku := l.ProductCode
		if l.Item.IsExternal {
			sku = "EXT"
			name += " (proveedor externo)"
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(fmt.Sprint(l.Item.Quantity), 1, align.Center),
			cell(sku, 2, align.Left),
			cell(name, 5, align.Left),
			cell(fmt.Sprint(l.Item.ExportedQuantity), 2, align.Center),
			cell(fmt.Sprint(l.Item.ReturnedQuantity), 2, align.Center),
		))
		if len(l.Serials) > 0 {
			result = append(result, row.New(5).Add(
				col.New(1),
				col.New(11).Add(text.New("Seriales: "+strings.Join(l.Serials, ", "), props.Text{
					Size: 7, Color: colorGray, Left: 1,
				})),
			))
		}
	}
	return result
}

func totalRow(order *entity.Order) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL ALQUILER:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(order.TotalAmount.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow(order *entity.Order) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(order.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Recibí los equipos descritos en buen estado.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Firma cliente: ______________________", props.Text{Size: 9, Top: 18, Left: 3}),
			text.New("Firma bodega:  ______________________", props.Text{Size: 9, Top: 28, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + strings.ToUpper(id[:8])
	}
	return "#" + strings.ToUpper(id)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
