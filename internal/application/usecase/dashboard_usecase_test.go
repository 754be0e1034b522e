package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

// Caso 1: el resumen combina totales, flujo de 30 días, actividad reciente
// y productos críticos.
func TestDashboardSummary_CombinaLasCuatroConsultas(t *testing.T) {
	repo := &fakeReportRepo{
		totals: repository.InventoryTotals{
			TotalProducts: 12,
			TotalUnits:    340,
			CriticalCount: 3,
			TotalValue:    decimal.RequireFromString("1520.456"),
		},
		flow: repository.MovementTotals{Inflow: 80, Outflow: 65},
		movements: []repository.MovementWithProduct{
			{
				Movement: entity.StockMovement{
					ID: "m9", ProductID: "p1", Direction: entity.DirectionOut,
					Quantity: 2, PreviousQuantity: 7, NewQuantity: 5,
					CreatedAt: time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC),
				},
				ProductName: "Agua sin gas",
			},
		},
		critical: []repository.ProductWithCategory{
			valuedProduct("p1", "Agua sin gas", 5, "1.25"),
		},
	}
	uc := usecase.NewDashboardUseCase(repo)

	out, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), out.TotalProducts)
	assert.Equal(t, int64(340), out.TotalUnits)
	assert.Equal(t, int64(3), out.CriticalCount)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("1520.46")), "valor redondeado, fue %s", out.TotalValue)
	assert.Equal(t, int64(80), out.Inflow30d)
	assert.Equal(t, int64(65), out.Outflow30d)

	require.Len(t, out.RecentMovements, 1)
	assert.Equal(t, "Agua sin gas", out.RecentMovements[0].ProductName)
	assert.Equal(t, entity.DirectionOut, out.RecentMovements[0].Direction)

	require.Len(t, out.CriticalProducts, 1)
	assert.Equal(t, entity.StockStatusCritical, out.CriticalProducts[0].StockStatus)
}

// Caso 2: cualquier consulta caída tumba el resumen completo.
func TestDashboardSummary_PropagaErrores(t *testing.T) {
	repo := &fakeReportRepo{err: errors.New("db caída")}
	uc := usecase.NewDashboardUseCase(repo)

	_, err := uc.Summary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard:")
}
