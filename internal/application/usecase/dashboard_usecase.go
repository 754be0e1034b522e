package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

const (
	dashboardRecentMovements = 10 // movimientos en el widget de actividad
	dashboardFlowDays        = 30 // ventana del flujo entradas/salidas
)

// DashboardUseCase genera el resumen operativo del inventario.
//
// Fuente de datos: ReportRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// Summary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. InventoryTotals           → totales globales y conteo crítico
//  2. MovementTotals(30 días)   → Inflow30d + Outflow30d
//  3. ListMovements(últimos 10) → RecentMovements
//  4. ListCriticalProducts      → CriticalProducts
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now().UTC()
	flowFrom := now.AddDate(0, 0, -dashboardFlowDays)

	// ── Goroutines para paralelizar las 4 consultas DB ────────────────────────
	type totalsResult struct {
		totals repository.InventoryTotals
		err    error
	}
	type flowResult struct {
		totals repository.MovementTotals
		err    error
	}
	type recentResult struct {
		rows []repository.MovementWithProduct
		err  error
	}
	type criticalResult struct {
		rows []repository.ProductWithCategory
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	flowCh := make(chan flowResult, 1)
	recentCh := make(chan recentResult, 1)
	criticalCh := make(chan criticalResult, 1)

	go func() {
		totals, err := uc.reportRepo.InventoryTotals(ctx)
		totalsCh <- totalsResult{totals, err}
	}()
	go func() {
		totals, err := uc.reportRepo.MovementTotals(ctx, flowFrom, now)
		flowCh <- flowResult{totals, err}
	}()
	go func() {
		rows, err := uc.reportRepo.ListMovements(ctx, repository.MovementReportFilter{Limit: dashboardRecentMovements})
		recentCh <- recentResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.ListCriticalProducts(ctx)
		criticalCh <- criticalResult{rows, err}
	}()

	totals := <-totalsCh
	flow := <-flowCh
	recent := <-recentCh
	critical := <-criticalCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de inventario: %w", totals.err)
	}
	if flow.err != nil {
		return nil, fmt.Errorf("dashboard: flujo de movimientos: %w", flow.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", recent.err)
	}
	if critical.err != nil {
		return nil, fmt.Errorf("dashboard: productos críticos: %w", critical.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	summary := &dto.DashboardSummaryDTO{
		TotalProducts:    totals.totals.TotalProducts,
		TotalUnits:       totals.totals.TotalUnits,
		TotalValue:       totals.totals.TotalValue.Round(2),
		CriticalCount:    totals.totals.CriticalCount,
		Inflow30d:        flow.totals.Inflow,
		Outflow30d:       flow.totals.Outflow,
		RecentMovements:  make([]dto.MovementResponse, 0, len(recent.rows)),
		CriticalProducts: make([]dto.ProductResponse, 0, len(critical.rows)),
	}
	for _, r := range recent.rows {
		summary.RecentMovements = append(summary.RecentMovements, *toMovementResponse(&r.Movement, r.ProductName))
	}
	for _, r := range critical.rows {
		p := r.Product
		summary.CriticalProducts = append(summary.CriticalProducts, *toProductResponse(&p, r.CategoryName))
	}
	return summary, nil
}
