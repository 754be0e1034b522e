package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Totales globales, flujo de los últimos 30 días, movimientos recientes
// y la lista de productos críticos.
type DashboardSummaryDTO struct {
	TotalProducts int64           `json:"total_products"`
	TotalUnits    int64           `json:"total_units"`
	TotalValue    decimal.Decimal `json:"total_value"`
	CriticalCount int64           `json:"critical_count"`

	// Flujo de los últimos 30 días
	Inflow30d  int64 `json:"inflow_30d"`
	Outflow30d int64 `json:"outflow_30d"`

	// Últimos 10 movimientos, del más reciente al más antiguo
	RecentMovements []MovementResponse `json:"recent_movements"`

	// Productos en estado crítico ordenados por cantidad ascendente
	CriticalProducts []ProductResponse `json:"critical_products"`
}
