package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// TrendRequest parámetros para GET /api/reports/trends.
type TrendRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto hace 30 días
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
	Bucket    string `query:"bucket"`     // day|week (default day)
}

// ReportFilterRequest parámetros comunes de reporte y export.
type ReportFilterRequest struct {
	CategoryID string `query:"category_id"`
	StartDate  string `query:"start_date"` // YYYY-MM-DD
	EndDate    string `query:"end_date"`   // YYYY-MM-DD
}

// ── Agregaciones ──────────────────────────────────────────────────────────────

// StockStatusDTO conteo de productos por estado de stock.
type StockStatusDTO struct {
	Critical int64 `json:"critical"` // quantity <= threshold
	Low      int64 `json:"low"`      // threshold < quantity <= 2*threshold
	Normal   int64 `json:"normal"`
	Total    int64 `json:"total"`
}

// CategoryValueDTO valoración de una categoría.
type CategoryValueDTO struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	ProductCount int64           `json:"product_count"`
	TotalUnits   int64           `json:"total_units"`
	TotalValue   decimal.Decimal `json:"total_value"` // sum(quantity * unit_price)
}

// TrendBucketDTO un bucket de la serie de movimientos (serie sin huecos).
type TrendBucketDTO struct {
	Label   string `json:"label"` // YYYY-MM-DD; las semanas se etiquetan por su lunes
	Inflow  int64  `json:"inflow"`
	Outflow int64  `json:"outflow"`
	Net     int64  `json:"net"` // inflow - outflow
}

// TrendResponse respuesta de GET /api/reports/trends.
type TrendResponse struct {
	Bucket    string           `json:"bucket"` // day|week
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Items     []TrendBucketDTO `json:"items"`
}

// TopProductDTO producto del ranking por valor de inventario.
type TopProductDTO struct {
	Rank         int             `json:"rank"` // 1 = mayor valor
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// ── Reporte combinado ─────────────────────────────────────────────────────────

// ReportFilterDTO filtros aplicados a un reporte.
type ReportFilterDTO struct {
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

// InventoryReportDTO snapshot completo para JSON y exportadores.
// Los exportadores (Excel/PDF) solo renderizan este DTO, nunca consultan.
type InventoryReportDTO struct {
	GeneratedAt  time.Time          `json:"generated_at"`
	Filters      ReportFilterDTO    `json:"filters"`
	Products     []ProductResponse  `json:"products"`
	Movements    []MovementResponse `json:"movements"`
	TotalValue   decimal.Decimal    `json:"total_value"` // valor del stock filtrado
	TotalInflow  int64              `json:"total_inflow"`
	TotalOutflow int64              `json:"total_outflow"`
	NetChange    int64              `json:"net_change"`
}
