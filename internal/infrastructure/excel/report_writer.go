// Package excel genera y lee libros xlsx: el reporte de inventario
// descargable y la plantilla de conteo físico. Los escritores solo
// renderizan DTOs ya calculados, nunca consultan la base.
package excel

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
)

const (
	productsSheet  = "Products"
	movementsSheet = "Stock Movements"

	// mismo azul corporativo que usa el generador PDF (RGB 0,70,127)
	colorHeader = "00467F"
)

// ReportWriter renderiza un InventoryReportDTO como libro xlsx de dos hojas.
type ReportWriter struct{}

// NewReportWriter construye el escritor de reportes.
func NewReportWriter() *ReportWriter { return &ReportWriter{} }

// Generate produce el libro y su nombre de archivo con timestamp.
func (w *ReportWriter) Generate(report *dto.InventoryReportDTO) ([]byte, string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), productsSheet); err != nil {
		return nil, "", fmt.Errorf("excel: renombrar hoja de productos: %w", err)
	}
	if _, err := f.NewSheet(movementsSheet); err != nil {
		return nil, "", fmt.Errorf("excel: crear hoja de movimientos: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorHeader}},
	})
	if err != nil {
		return nil, "", fmt.Errorf("excel: crear estilo de cabecera: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, "", fmt.Errorf("excel: crear estilo de totales: %w", err)
	}

	if err := writeProductsSheet(f, report, headerStyle, totalStyle); err != nil {
		return nil, "", err
	}
	if err := writeMovementsSheet(f, report, headerStyle, totalStyle); err != nil {
		return nil, "", err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("excel: escribir libro: %w", err)
	}
	name := fmt.Sprintf("stocktrack_report_%s.xlsx", report.GeneratedAt.UTC().Format("20060102_150405"))
	return buf.Bytes(), name, nil
}

func writeProductsSheet(f *excelize.File, report *dto.InventoryReportDTO, headerStyle, totalStyle int) error {
	header := []interface{}{
		"Producto", "Código de barras", "Categoría", "Cantidad",
		"Umbral", "Estado", "Precio unitario", "Valor total",
	}
	if err := f.SetSheetRow(productsSheet, "A1", &header); err != nil {
		return fmt.Errorf("excel: cabecera de productos: %w", err)
	}
	if err := f.SetCellStyle(productsSheet, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("excel: estilo de cabecera: %w", err)
	}
	_ = f.SetColWidth(productsSheet, "A", "A", 34)
	_ = f.SetColWidth(productsSheet, "B", "C", 20)
	_ = f.SetColWidth(productsSheet, "D", "F", 13)
	_ = f.SetColWidth(productsSheet, "G", "H", 16)

	row := 2
	var totalUnits int64
	for _, p := range report.Products {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("excel: celda de producto: %w", err)
		}
		values := []interface{}{
			p.Name, p.Barcode, p.CategoryName, p.Quantity,
			p.Threshold, statusLabel(p.StockStatus),
			p.UnitPrice.InexactFloat64(), p.TotalValue.InexactFloat64(),
		}
		if err := f.SetSheetRow(productsSheet, cell, &values); err != nil {
			return fmt.Errorf("excel: fila de producto: %w", err)
		}
		totalUnits += p.Quantity
		row++
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("excel: celda de totales: %w", err)
	}
	totals := []interface{}{
		"TOTAL", "", "", totalUnits, "", "", "", report.TotalValue.InexactFloat64(),
	}
	if err := f.SetSheetRow(productsSheet, cell, &totals); err != nil {
		return fmt.Errorf("excel: fila de totales: %w", err)
	}
	end, _ := excelize.CoordinatesToCellName(8, row)
	_ = f.SetCellStyle(productsSheet, cell, end, totalStyle)
	return nil
}

func writeMovementsSheet(f *excelize.File, report *dto.InventoryReportDTO, headerStyle, totalStyle int) error {
	header := []interface{}{
		"Fecha", "Producto", "Tipo", "Cantidad", "Stock anterior", "Stock nuevo", "Nota",
	}
	if err := f.SetSheetRow(movementsSheet, "A1", &header); err != nil {
		return fmt.Errorf("excel: cabecera de movimientos: %w", err)
	}
	if err := f.SetCellStyle(movementsSheet, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("excel: estilo de cabecera: %w", err)
	}
	_ = f.SetColWidth(movementsSheet, "A", "A", 18)
	_ = f.SetColWidth(movementsSheet, "B", "B", 34)
	_ = f.SetColWidth(movementsSheet, "C", "F", 14)
	_ = f.SetColWidth(movementsSheet, "G", "G", 36)

	row := 2
	for _, m := range report.Movements {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("excel: celda de movimiento: %w", err)
		}
		values := []interface{}{
			m.CreatedAt.UTC().Format("2006-01-02 15:04"),
			m.ProductName, directionLabel(m.Direction), m.Quantity,
			m.PreviousQuantity, m.NewQuantity, m.Note,
		}
		if err := f.SetSheetRow(movementsSheet, cell, &values); err != nil {
			return fmt.Errorf("excel: fila de movimiento: %w", err)
		}
		row++
	}

	row++ // fila en blanco antes del resumen
	summary := [][]interface{}{
		{"", "", "Entradas", report.TotalInflow},
		{"", "", "Salidas", report.TotalOutflow},
		{"", "", "Cambio neto", report.NetChange},
	}
	for _, values := range summary {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("excel: celda de resumen: %w", err)
		}
		v := values
		if err := f.SetSheetRow(movementsSheet, cell, &v); err != nil {
			return fmt.Errorf("excel: fila de resumen: %w", err)
		}
		start, _ := excelize.CoordinatesToCellName(3, row)
		end, _ := excelize.CoordinatesToCellName(4, row)
		_ = f.SetCellStyle(movementsSheet, start, end, totalStyle)
		row++
	}
	return nil
}

// statusLabel etiqueta en español para la hoja (la API expone los valores crudos).
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

// timestampName arma un nombre de archivo con marca de tiempo UTC.
func timestampName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().UTC().Format("20060102_150405"), ext)
}
