package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados (nunca se almacenan).
const (
	StockStatusCritical = "critical" // quantity <= threshold
	StockStatusLow      = "low"      // quantity <= 2*threshold
	StockStatusNormal   = "normal"
)

// Product representa un producto del inventario. Quantity es una caché
// derivada del libro de movimientos: solo cambia a través del ledger,
// nunca por edición directa.
type Product struct {
	ID         string
	Name       string
	Barcode    string // opcional; único cuando está presente
	CategoryID string
	Quantity   int64 // unidades en existencia (caché del ledger)
	Threshold  int64 // umbral de stock crítico
	UnitPrice  decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsCritical indica si el producto está en o por debajo de su umbral.
func (p *Product) IsCritical() bool {
	return p.Quantity <= p.Threshold
}

// IsLow indica si el producto está en la banda baja (hasta el doble del umbral)
// sin llegar a crítico.
func (p *Product) IsLow() bool {
	return !p.IsCritical() && p.Quantity <= 2*p.Threshold
}

// StockStatus clasifica el producto en critical, low o normal.
func (p *Product) StockStatus() string {
	switch {
	case p.IsCritical():
		return StockStatusCritical
	case p.IsLow():
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}

// TotalValue es el valor del stock actual (quantity * unit_price).
func (p *Product) TotalValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity))
}
