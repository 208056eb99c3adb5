// Package pdf genera la hoja de catálogo imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del catálogo  │  Fecha + N° de productos     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Slug | Tallas | Stock | Precio | QR       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: enlace público de la tienda                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const descriptionMax = 90

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.CatalogPDFGenerator = (*MarotoCatalogGenerator)(nil)

// MarotoCatalogGenerator implementa usecase.CatalogPDFGenerator usando Maroto v2.
type MarotoCatalogGenerator struct{}

// NewMarotoCatalogGenerator construye el generador.
func NewMarotoCatalogGenerator() *MarotoCatalogGenerator { return &MarotoCatalogGenerator{} }

// GenerateCatalogPDF genera el PDF y devuelve sus bytes.
func (g *MarotoCatalogGenerator) GenerateCatalogPDF(_ context.Context, sheet usecase.CatalogSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(nonEmpty(sheet.Title, "Catálogo"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if len(sheet.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("El catálogo está vacío.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	for _, item := range sheet.Items {
		m.AddRows(productRow(item))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.1}))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sheet))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sheet usecase.CatalogSheet) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(sheet.Title, "Catálogo"), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d productos", len(sheet.Items)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Slug", 2, align.Left),
		h("Tallas", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Precio", 2, align.Right),
		h("QR", 1, align.Center),
	)
}

// productRow: una fila por producto, con QR al enlace público.
func productRow(item usecase.CatalogItem) core.Row {
	p := item.Product
	return row.New(20).Add(
		col.New(4).Add(
			text.New(p.Title, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1}),
			text.New(truncate(p.Description, descriptionMax), props.Text{
				Size: 6.5, Top: 6, Left: 1, Color: colorGray,
			}),
		),
		col.New(2).Add(text.New(p.Slug, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		col.New(2).Add(text.New(nonEmpty(strings.Join(p.Sizes, ", "), "—"), props.Text{Size: 7, Top: 1, Left: 1})),
		col.New(1).Add(text.New(strconv.Itoa(p.Stock), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New("$"+formatMoney(p.Price.StringFixed(2)), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(1).Add(code.NewQr(item.Link, props.Rect{Percent: 90, Center: true})),
	)
}

func footerRow(sheet usecase.CatalogSheet) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Precios sujetos a cambio sin previo aviso. "+sheet.Link, props.Text{
			Size: 6.5, Color: colorGray, Top: 2, Align: align.Center,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// truncate corta s a n runas y agrega "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// formatMoney inserta puntos de miles en la parte entera y usa coma decimal.
// Ej: "25000.50" → "25.000,50", "75.00" → "75,00"
func formatMoney(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+2)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
