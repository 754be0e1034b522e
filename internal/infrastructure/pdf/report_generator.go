// Package pdf genera los documentos imprimibles del inventario con Maroto v2.
//
// Layout del reporte A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + filtros      │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA PRODUCTOS: Producto | Cat | Cant | Estado | Valor    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Valor total / Entradas / Salidas / Cambio neto    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA MOVIMIENTOS: Fecha | Producto | Tipo | Cantidades    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDanger  = &props.Color{Red: 176, Green: 42, Blue: 42}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Generator renderiza DTOs ya calculados como PDF; nunca consulta la base.
type Generator struct{}

// NewGenerator construye el generador.
func NewGenerator() *Generator { return &Generator{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("StockTrack", true).
		Build()
	return maroto.New(cfg)
}

// GenerateInventoryReport genera el PDF del reporte y devuelve bytes y nombre.
func (g *Generator) GenerateInventoryReport(report *dto.InventoryReportDTO) ([]byte, string, error) {
	m := newDocument("Reporte de Inventario")

	m.AddRows(titleRow("REPORTE DE INVENTARIO", report.GeneratedAt))
	if f := filterLine(report.Filters); f != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New(f, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de productos
	m.AddRows(sectionRow("PRODUCTOS"))
	m.AddRows(productHeaderRow())
	for _, r := range productRows(report.Products) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(reportTotalsRow(report))

	// Movimientos del rango
	if len(report.Movements) > 0 {
		m.AddRows(line.NewRow(2))
		m.AddRows(sectionRow("MOVIMIENTOS"))
		m.AddRows(movementHeaderRow())
		for _, r := range movementRows(report.Movements) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar reporte: %w", err)
	}
	name := fmt.Sprintf("stocktrack_report_%s.pdf", report.GeneratedAt.UTC().Format("20060102_150405"))
	return doc.GetBytes(), name, nil
}

// GenerateDashboardSummary genera el PDF del resumen operativo.
func (g *Generator) GenerateDashboardSummary(summary *dto.DashboardSummaryDTO) ([]byte, string, error) {
	now := time.Now().UTC()
	m := newDocument("Resumen de Inventario")

	m.AddRows(titleRow("RESUMEN DE INVENTARIO", now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Métricas principales en cuatro columnas
	m.AddRows(row.New(16).Add(
		metricCol("Productos", fmt.Sprintf("%d", summary.TotalProducts), colorPrimary),
		metricCol("Unidades", fmt.Sprintf("%d", summary.TotalUnits), colorPrimary),
		metricCol("Valor total", "$"+formatMoney(summary.TotalValue), colorPrimary),
		metricCol("En estado crítico", fmt.Sprintf("%d", summary.CriticalCount), colorDanger),
	))
	m.AddRows(row.New(10).Add(
		metricCol("Entradas (30 días)", fmt.Sprintf("%d", summary.Inflow30d), colorGray),
		metricCol("Salidas (30 días)", fmt.Sprintf("%d", summary.Outflow30d), colorGray),
		col.New(6),
	))

	// Productos críticos
	if len(summary.CriticalProducts) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionRow("PRODUCTOS EN ESTADO CRÍTICO"))
		m.AddRows(criticalHeaderRow())
		for _, r := range criticalRows(summary.CriticalProducts) {
			m.AddRows(r)
		}
	}

	// Actividad reciente
	if len(summary.RecentMovements) > 0 {
		m.AddRows(line.NewRow(2))
		m.AddRows(sectionRow("MOVIMIENTOS RECIENTES"))
		m.AddRows(movementHeaderRow())
		for _, r := range movementRows(summary.RecentMovements) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar resumen: %w", err)
	}
	name := fmt.Sprintf("stocktrack_dashboard_%s.pdf", now.Format("20060102_150405"))
	return doc.GetBytes(), name, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow: título (izq) y fecha de generación (der).
func titleRow(title string, generatedAt time.Time) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.UTC().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionRow(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
}

// filterLine describe los filtros aplicados; vacío cuando no hay ninguno.
func filterLine(f dto.ReportFilterDTO) string {
	var parts []string
	if f.CategoryName != "" {
		parts = append(parts, "Categoría: "+f.CategoryName)
	}
	if f.StartDate != "" {
		parts = append(parts, "Desde: "+f.StartDate)
	}
	if f.EndDate != "" {
		parts = append(parts, "Hasta: "+f.EndDate)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filtros   " + strings.Join(parts, "   |   ")
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

func productHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("Producto", 3, align.Left),
		headerCol("Categoría", 2, align.Left),
		headerCol("Cant.", 1, align.Center),
		headerCol("Estado", 2, align.Center),
		headerCol("Precio Unit.", 2, align.Right),
		headerCol("Valor", 2, align.Right),
	)
}

func productRows(products []dto.ProductResponse) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		statusColor := colorGray
		if p.StockStatus == entity.StockStatusCritical {
			statusColor = colorDanger
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.CategoryName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", p.Quantity), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(statusLabel(p.StockStatus), props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: statusColor,
			})),
			col.New(2).Add(text.New("$"+formatMoney(p.UnitPrice), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+formatMoney(p.TotalValue), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// reportTotalsRow: bloque de totales alineado a la derecha.
func reportTotalsRow(report *dto.InventoryReportDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(24).Add(
		col.New(4),
		col.New(4).Add(
			label("Valor del inventario:"),
			label("Entradas del período:"),
			label("Salidas del período:"),
			label("Cambio neto:"),
		),
		col.New(4).Add(
			value("$"+formatMoney(report.TotalValue)),
			value(fmt.Sprintf("%d", report.TotalInflow)),
			value(fmt.Sprintf("%d", report.TotalOutflow)),
			value(fmt.Sprintf("%+d", report.NetChange)),
		),
	)
}

func movementHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("Fecha", 2, align.Left),
		headerCol("Producto", 4, align.Left),
		headerCol("Tipo", 1, align.Center),
		headerCol("Cant.", 1, align.Center),
		headerCol("Anterior", 1, align.Right),
		headerCol("Nuevo", 1, align.Right),
		headerCol("Nota", 2, align.Left),
	)
}

func movementRows(movements []dto.MovementResponse) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, m := range movements {
		typeColor := colorPrimary
		if m.Direction == entity.DirectionOut {
			typeColor = colorDanger
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(m.CreatedAt.UTC().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 1, Left: 1,
			})),
			col.New(4).Add(text.New(m.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(directionLabel(m.Direction), props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: typeColor,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", m.Quantity), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", m.PreviousQuantity), props.Text{
				Size: 8, Align: align.Right, Top: 1,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", m.NewQuantity), props.Text{
				Size: 8, Align: align.Right, Top: 1,
			})),
			col.New(2).Add(text.New(m.Note, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return result
}

func criticalHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("Producto", 5, align.Left),
		headerCol("Categoría", 3, align.Left),
		headerCol("Cantidad", 2, align.Center),
		headerCol("Umbral", 2, align.Center),
	)
}

func criticalRows(products []dto.ProductResponse) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(p.CategoryName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", p.Quantity), props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: colorDanger,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", p.Threshold), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
		))
	}
	return result
}

// metricCol: métrica del resumen con etiqueta pequeña y valor destacado.
func metricCol(label, value string, valueColor *props.Color) core.Col {
	return col.New(3).Add(
		text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
		text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 12, Color: valueColor, Top: 5,
		}),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	switch status {
	case entity.StockStatusCritical:
		return "CRÍTICO"
	case entity.StockStatusLow:
		return "BAJO"
	default:
		return "NORMAL"
	}
}

func directionLabel(direction string) string {
	if direction == entity.DirectionIn {
		return "ENTRADA"
	}
	return "SALIDA"
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 1234567.89 → "1.234.567,89"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	out := string(buf) + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
