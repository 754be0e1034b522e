// Package csvexport genera el CSV de productos para importación en ERPs
// heredados. Soporta salida UTF-8 (por defecto) o Latin-1 para sistemas
// Windows en español que no leen UTF-8.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/domain"
)

// Codificaciones aceptadas en ?encoding=.
const (
	EncodingUTF8   = "utf8"
	EncodingLatin1 = "latin1"
)

var csvHeader = []string{
	"product_id", "name", "barcode", "category", "quantity",
	"threshold", "unit_price", "total_value", "status",
}

// ProductWriter renderiza listados de productos como CSV.
type ProductWriter struct{}

// NewProductWriter construye el escritor CSV.
func NewProductWriter() *ProductWriter { return &ProductWriter{} }

// Generate produce el CSV y su nombre de archivo. encoding vacío equivale
// a utf8; cualquier otro valor distinto de latin1 se rechaza.
func (w *ProductWriter) Generate(products []dto.ProductResponse, enc string) ([]byte, string, error) {
	if enc == "" {
		enc = EncodingUTF8
	}
	if enc != EncodingUTF8 && enc != EncodingLatin1 {
		return nil, "", fmt.Errorf("%w: codificación no soportada: %q", domain.ErrInvalidInput, enc)
	}

	buf := &bytes.Buffer{}
	cw := csv.NewWriter(buf)
	if err := cw.Write(csvHeader); err != nil {
		return nil, "", fmt.Errorf("csv: escribir cabecera: %w", err)
	}
	for _, p := range products {
		record := []string{
			p.ID,
			p.Name,
			p.Barcode,
			p.CategoryName,
			strconv.FormatInt(p.Quantity, 10),
			strconv.FormatInt(p.Threshold, 10),
			p.UnitPrice.StringFixed(2),
			p.TotalValue.StringFixed(2),
			p.StockStatus,
		}
		if err := cw.Write(record); err != nil {
			return nil, "", fmt.Errorf("csv: escribir fila: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, "", fmt.Errorf("csv: volcar buffer: %w", err)
	}

	data := buf.Bytes()
	if enc == EncodingLatin1 {
		// Windows-1252 cubre el español; los caracteres sin equivalente se
		// sustituyen en vez de abortar la exportación.
		encoder := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
		transcoded, err := encoder.Bytes(data)
		if err != nil {
			return nil, "", fmt.Errorf("csv: transcodificar a latin1: %w", err)
		}
		data = transcoded
	}

	name := fmt.Sprintf("stocktrack_products_%s.csv", time.Now().UTC().Format("20060102_150405"))
	return data, name, nil
}
