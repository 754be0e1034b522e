package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/stocktrack-api/internal/domain/entity"
)

// StockStatusCounts conteo de productos por estado de stock.
type StockStatusCounts struct {
	Critical int64
	Low      int64
	Normal   int64
}

// CategoryValueResult resultado crudo de la valoración por categoría.
// Lo produce la DB; el use case lo convierte en DTO.
type CategoryValueResult struct {
	CategoryID   string
	CategoryName string
	ProductCount int64
	TotalUnits   int64
	TotalValue   decimal.Decimal // sum(quantity * unit_price)
}

// TrendRow bucket disperso de la serie de movimientos: solo aparecen los
// buckets con actividad, el use case rellena los vacíos con ceros.
type TrendRow struct {
	Bucket  time.Time // inicio del día o de la semana (UTC)
	Inflow  int64
	Outflow int64
}

// ProductWithCategory producto junto con el nombre de su categoría.
type ProductWithCategory struct {
	Product      entity.Product
	CategoryName string
}

// MovementWithProduct movimiento junto con el nombre del producto.
type MovementWithProduct struct {
	Movement    entity.StockMovement
	ProductName string
}

// MovementReportFilter acota listados de movimientos para reportes.
// From/To forman un rango semiabierto [From, To); Limit 0 = sin tope.
type MovementReportFilter struct {
	ProductID  string
	CategoryID string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// InventoryTotals totales globales del inventario.
type InventoryTotals struct {
	TotalProducts int64
	TotalUnits    int64
	CriticalCount int64
	TotalValue    decimal.Decimal
}

// MovementTotals entradas y salidas acumuladas en un rango.
type MovementTotals struct {
	Inflow  int64
	Outflow int64
}

// ReportRepository define las consultas de lectura para reportes y dashboard.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// StockStatusCounts clasifica todos los productos en critical/low/normal.
	StockStatusCounts(ctx context.Context) (StockStatusCounts, error)

	// CategoryValues devuelve la valoración de cada categoría, incluyendo
	// las que no tienen productos (en cero), ordenada por valor descendente.
	CategoryValues(ctx context.Context) ([]CategoryValueResult, error)

	// TrendRows agrupa movimientos por bucket ('day' o 'week') en el rango
	// semiabierto [from, to). Devuelve solo buckets con actividad.
	TrendRows(ctx context.Context, from, to time.Time, bucket string) ([]TrendRow, error)

	// ProductValueRows devuelve todos los productos con su categoría para
	// valoración; el ordenamiento y el ranking se hacen en el use case.
	ProductValueRows(ctx context.Context) ([]ProductWithCategory, error)

	// ListProducts lista productos con nombre de categoría para el snapshot
	// de reporte.
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductWithCategory, error)

	// ListMovements lista movimientos con nombre de producto, del más
	// reciente al más antiguo.
	ListMovements(ctx context.Context, filter MovementReportFilter) ([]MovementWithProduct, error)

	// ── Métodos del Dashboard ─────────────────────────────────────────────

	// InventoryTotals devuelve los totales globales en una sola consulta.
	// Usa COALESCE para devolver cero con el inventario vacío.
	InventoryTotals(ctx context.Context) (InventoryTotals, error)

	// MovementTotals suma entradas y salidas del rango dado.
	MovementTotals(ctx context.Context, from, to time.Time) (MovementTotals, error)

	// ListCriticalProducts devuelve los productos en estado crítico
	// ordenados por cantidad ascendente.
	ListCriticalProducts(ctx context.Context) ([]ProductWithCategory, error)
}
