package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/application/ledger"
	"github.com/invorya/stocktrack-api/internal/domain"
)

const recountSheet = "Conteo"

// recountHeader claves de columna estables para que la hoja sobreviva al
// viaje de ida y vuelta por Excel sin depender de etiquetas traducidas.
var recountHeader = []interface{}{
	"product_id", "name", "category", "current_quantity", "counted_quantity",
}

// BuildRecountTemplate arma la plantilla de conteo físico: una fila por
// producto con la columna counted_quantity vacía para llenar a mano.
func BuildRecountTemplate(products []dto.ProductResponse) ([]byte, string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), recountSheet); err != nil {
		return nil, "", fmt.Errorf("excel: renombrar hoja de conteo: %w", err)
	}
	if err := f.SetSheetRow(recountSheet, "A1", &recountHeader); err != nil {
		return nil, "", fmt.Errorf("excel: cabecera de conteo: %w", err)
	}
	_ = f.SetColWidth(recountSheet, "A", "A", 38)
	_ = f.SetColWidth(recountSheet, "B", "B", 34)
	_ = f.SetColWidth(recountSheet, "C", "C", 22)
	_ = f.SetColWidth(recountSheet, "D", "E", 18)

	row := 2
	for _, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, "", fmt.Errorf("excel: celda de conteo: %w", err)
		}
		values := []interface{}{
			p.ID, p.Name, p.CategoryName, p.Quantity, "",
		}
		if err := f.SetSheetRow(recountSheet, cell, &values); err != nil {
			return nil, "", fmt.Errorf("excel: fila de conteo: %w", err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("excel: escribir plantilla: %w", err)
	}
	return buf.Bytes(), timestampName("plantilla_conteo", "xlsx"), nil
}

// ParseRecountSheet lee una plantilla de conteo diligenciada.
//
// Reglas por fila: counted_quantity en blanco significa "no contado" y la
// fila se ignora sin reportarla; un valor no numérico se reporta en skips
// y el parseo continúa. Las validaciones de negocio (producto inexistente,
// cantidad negativa) quedan a cargo del caso de uso.
func ParseRecountSheet(data []byte) ([]ledger.RecountLine, []ledger.RecountSkip, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: el archivo no es un xlsx válido", domain.ErrInvalidInput)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("excel: leer hoja de conteo: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("%w: la hoja no contiene filas de conteo", domain.ErrInvalidInput)
	}
	if len(rows[0]) < len(recountHeader) {
		return nil, nil, fmt.Errorf("%w: la hoja no tiene el formato de la plantilla de conteo", domain.ErrInvalidInput)
	}

	var lines []ledger.RecountLine
	var skips []ledger.RecountSkip
	for i := 1; i < len(rows); i++ {
		rowNum := i + 1
		productID := cellAt(rows[i], 0)
		counted := cellAt(rows[i], 4)

		if productID == "" && counted == "" {
			continue
		}
		if counted == "" {
			// producto sin contar: se deja tal cual
			continue
		}
		if productID == "" {
			skips = append(skips, ledger.RecountSkip{Row: rowNum, Reason: "product_id vacío"})
			continue
		}

		qty, err := parseCount(counted)
		if err != nil {
			skips = append(skips, ledger.RecountSkip{
				Row: rowNum, ProductID: productID,
				Reason: fmt.Sprintf("cantidad contada inválida: %q", counted),
			})
			continue
		}
		lines = append(lines, ledger.RecountLine{Row: rowNum, ProductID: productID, CountedQuantity: qty})
	}
	return lines, skips, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCount acepta enteros y también valores con formato decimal exacto
// ("12.0"), que Excel produce según el formato de celda.
func parseCount(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	fv, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, err
	}
	n := int64(fv)
	if float64(n) != fv {
		return 0, fmt.Errorf("valor no entero: %s", s)
	}
	return n, nil
}
