package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

// fakeReportRepo devuelve datos enlatados y registra los argumentos de la
// última consulta para verificar cómo lo llama el caso de uso.
type fakeReportRepo struct {
	counts    repository.StockStatusCounts
	values    []repository.CategoryValueResult
	trendRows []repository.TrendRow
	valueRows []repository.ProductWithCategory
	products  []repository.ProductWithCategory
	movements []repository.MovementWithProduct
	totals    repository.InventoryTotals
	flow      repository.MovementTotals
	critical  []repository.ProductWithCategory
	err       error

	trendFrom, trendTo time.Time
	trendBucket        string
	productFilter      repository.ProductFilter
	movementFilter     repository.MovementReportFilter
}

func (r *fakeReportRepo) StockStatusCounts(_ context.Context) (repository.StockStatusCounts, error) {
	return r.counts, r.err
}

func (r *fakeReportRepo) CategoryValues(_ context.Context) ([]repository.CategoryValueResult, error) {
	return r.values, r.err
}

func (r *fakeReportRepo) TrendRows(_ context.Context, from, to time.Time, bucket string) ([]repository.TrendRow, error) {
	r.trendFrom, r.trendTo, r.trendBucket = from, to, bucket
	return r.trendRows, r.err
}

func (r *fakeReportRepo) ProductValueRows(_ context.Context) ([]repository.ProductWithCategory, error) {
	return r.valueRows, r.err
}

func (r *fakeReportRepo) ListProducts(_ context.Context, filter repository.ProductFilter) ([]repository.ProductWithCategory, error) {
	r.productFilter = filter
	return r.products, r.err
}

func (r *fakeReportRepo) ListMovements(_ context.Context, filter repository.MovementReportFilter) ([]repository.MovementWithProduct, error) {
	r.movementFilter = filter
	return r.movements, r.err
}

func (r *fakeReportRepo) InventoryTotals(_ context.Context) (repository.InventoryTotals, error) {
	return r.totals, r.err
}

func (r *fakeReportRepo) MovementTotals(_ context.Context, _, _ time.Time) (repository.MovementTotals, error) {
	return r.flow, r.err
}

func (r *fakeReportRepo) ListCriticalProducts(_ context.Context) ([]repository.ProductWithCategory, error) {
	return r.critical, r.err
}

// valuedProduct fila de producto con categoría para las agregaciones.
func valuedProduct(id, name string, quantity int64, price string) repository.ProductWithCategory {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return repository.ProductWithCategory{
		Product: entity.Product{
			ID:         id,
			Name:       name,
			CategoryID: "c1",
			Quantity:   quantity,
			Threshold:  10,
			UnitPrice:  decimal.RequireFromString(price),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		CategoryName: "Bebidas",
	}
}

func newReportUseCase(repo *fakeReportRepo, s *catalogStore) *usecase.ReportUseCase {
	return usecase.NewReportUseCase(repo, &fakeCategoryRepo{s: s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ReportUseCase
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el estado de stock suma el total a partir de los tres conteos.
func TestStockStatus_SumaElTotal(t *testing.T) {
	repo := &fakeReportRepo{counts: repository.StockStatusCounts{Critical: 3, Low: 5, Normal: 12}}
	uc := newReportUseCase(repo, newCatalogStore())

	out, err := uc.StockStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Critical)
	assert.Equal(t, int64(5), out.Low)
	assert.Equal(t, int64(12), out.Normal)
	assert.Equal(t, int64(20), out.Total)
}

// Caso 2: la valoración por categoría redondea a centavos y conserva las
// categorías vacías en cero.
func TestCategoryValues_RedondeaADosDecimales(t *testing.T) {
	repo := &fakeReportRepo{values: []repository.CategoryValueResult{
		{CategoryID: "c1", CategoryName: "Bebidas", ProductCount: 2, TotalUnits: 30, TotalValue: decimal.RequireFromString("37.125")},
		{CategoryID: "c2", CategoryName: "Lácteos"},
	}}
	uc := newReportUseCase(repo, newCatalogStore())

	out, err := uc.CategoryValues(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].TotalValue.Equal(decimal.RequireFromString("37.13")), "redondeo a centavos, fue %s", out[0].TotalValue)
	assert.Equal(t, "Lácteos", out[1].CategoryName)
	assert.True(t, out[1].TotalValue.IsZero(), "las categorías vacías van en cero")
}

// Caso 3: la serie diaria no tiene huecos y la consulta cubre el rango
// semiabierto.
func TestTrends_RellenaDiasSinActividad(t *testing.T) {
	repo := &fakeReportRepo{trendRows: []repository.TrendRow{
		{Bucket: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Inflow: 10, Outflow: 4},
	}}
	uc := newReportUseCase(repo, newCatalogStore())

	out, err := uc.Trends(context.Background(), dto.TrendRequest{StartDate: "2025-06-01", EndDate: "2025-06-03"})
	require.NoError(t, err)

	assert.Equal(t, usecase.BucketDay, out.Bucket)
	require.Len(t, out.Items, 3, "un bucket por día, sin huecos")
	assert.Equal(t, dto.TrendBucketDTO{Label: "2025-06-01"}, out.Items[0])
	assert.Equal(t, dto.TrendBucketDTO{Label: "2025-06-02", Inflow: 10, Outflow: 4, Net: 6}, out.Items[1])
	assert.Equal(t, dto.TrendBucketDTO{Label: "2025-06-03"}, out.Items[2])

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), repo.trendFrom)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), repo.trendTo, "el día final entra completo")
	assert.Equal(t, usecase.BucketDay, repo.trendBucket)
}

// Caso 4: las semanas se etiquetan por su lunes y cubren las semanas de los
// extremos completas.
func TestTrends_SemanasEtiquetadasPorLunes(t *testing.T) {
	// 2025-06-04 es miércoles; su semana abre el lunes 2025-06-02.
	repo := &fakeReportRepo{trendRows: []repository.TrendRow{
		{Bucket: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Inflow: 7},
	}}
	uc := newReportUseCase(repo, newCatalogStore())

	out, err := uc.Trends(context.Background(), dto.TrendRequest{
		StartDate: "2025-06-04",
		EndDate:   "2025-06-17",
		Bucket:    usecase.BucketWeek,
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 3)
	assert.Equal(t, "2025-06-02", out.Items[0].Label)
	assert.Equal(t, int64(7), out.Items[0].Inflow)
	assert.Equal(t, "2025-06-09", out.Items[1].Label)
	assert.Equal(t, "2025-06-16", out.Items[2].Label)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), repo.trendFrom)
	assert.Equal(t, time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC), repo.trendTo, "la semana del 16 entra completa")
}

// Caso 5: sin fechas la serie cubre los últimos 30 días terminando hoy.
func TestTrends_PorDefectoUltimos30Dias(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newReportUseCase(repo, newCatalogStore())

	out, err := uc.Trends(context.Background(), dto.TrendRequest{})
	require.NoError(t, err)

	assert.Equal(t, usecase.BucketDay, out.Bucket)
	require.Len(t, out.Items, 30)
	start, err := time.Parse("2006-01-02", out.StartDate)
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", out.EndDate)
	require.NoError(t, err)
	assert.Equal(t, 29*24*time.Hour, end.Sub(start))
	assert.Equal(t, out.EndDate, out.Items[29].Label, "el último bucket es el día final")
}

// Caso 6: parámetros inválidos.
func TestTrends_EntradasInvalidas(t *testing.T) {
	uc := newReportUseCase(&fakeReportRepo{}, newCatalogStore())

	cases := []struct {
		name string
		in   dto.TrendRequest
	}{
		{"bucket desconocido", dto.TrendRequest{Bucket: "hour"}},
		{"fecha inicial malformada", dto.TrendRequest{StartDate: "01/06/2025"}},
		{"fecha final malformada", dto.TrendRequest{EndDate: "2025-6-1"}},
		{"inicio después del fin", dto.TrendRequest{StartDate: "2025-06-10", EndDate: "2025-06-01"}},
		{"rango mayor a un año", dto.TrendRequest{StartDate: "2024-01-01", EndDate: "2025-12-31"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Trends(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Caso 7: el ranking ordena por valor descendente y desempata por ID para
// ser determinista.
func TestTopProducts_OrdenaPorValorYDesempataPorID(t *testing.T) {
	repo := &fakeReportRepo{valueRows: []repository.ProductWithCategory{
		valuedProduct("p3", "Teclado mecánico", 2, "50"),
		valuedProduct("p1", "Mouse inalámbrico", 10, "25"),
		valuedProduct("p2", "Monitor 24\"", 1, "100"),
	}}
	uc := newReportUseCase(repo, newCatalogStore())

	out, err := uc.TopProducts(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, "p1", out[0].ProductID, "250 es el mayor valor")
	assert.Equal(t, 1, out[0].Rank)
	assert.True(t, out[0].TotalValue.Equal(decimal.RequireFromString("250")))
	assert.Equal(t, "p2", out[1].ProductID, "a igual valor gana el ID menor")
	assert.Equal(t, "p3", out[2].ProductID)
	assert.Equal(t, 3, out[2].Rank)
}

// Caso 8: límite por defecto 10 y tope 100.
func TestTopProducts_AplicaLimites(t *testing.T) {
	rows := make([]repository.ProductWithCategory, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, valuedProduct(fmt.Sprintf("p%03d", i), fmt.Sprintf("Producto %d", i), int64(i+1), "2"))
	}
	repo := &fakeReportRepo{valueRows: rows}
	uc := newReportUseCase(repo, newCatalogStore())

	out, err := uc.TopProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, out, 10, "límite por defecto")

	out, err = uc.TopProducts(context.Background(), 1000)
	require.NoError(t, err)
	assert.Len(t, out, 100, "el tope es 100")

	out, err = uc.TopProducts(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "p119", out[0].ProductID, "mayor valor primero")
}

// Caso 9: el listado de movimientos traduce el rango de fechas y aplica los
// topes.
func TestReportListMovements_AplicaTopesYFiltros(t *testing.T) {
	repo := &fakeReportRepo{movements: []repository.MovementWithProduct{
		{
			Movement: entity.StockMovement{
				ID: "m1", ProductID: "p1", Direction: entity.DirectionIn,
				Quantity: 5, NewQuantity: 5,
				CreatedAt: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
			},
			ProductName: "Agua sin gas",
		},
	}}
	uc := newReportUseCase(repo, newCatalogStore())

	out, err := uc.ListMovements(context.Background(), dto.MovementListRequest{
		ProductID: "p1",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Agua sin gas", out[0].ProductName)

	assert.Equal(t, "p1", repo.movementFilter.ProductID)
	assert.Equal(t, 50, repo.movementFilter.Limit, "tope por defecto")
	require.NotNil(t, repo.movementFilter.From)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *repo.movementFilter.From)
	require.NotNil(t, repo.movementFilter.To)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), *repo.movementFilter.To, "el día final entra completo")

	_, err = uc.ListMovements(context.Background(), dto.MovementListRequest{Limit: 9000})
	require.NoError(t, err)
	assert.Equal(t, 500, repo.movementFilter.Limit, "tope máximo")

	_, err = uc.ListMovements(context.Background(), dto.MovementListRequest{StartDate: "2025-06-10", EndDate: "2025-06-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 10: el snapshot del reporte trae totales de valor y de flujo, y el
// nombre de la categoría filtrada.
func TestBuildReport_TotalesYFiltroDeCategoria(t *testing.T) {
	store := newCatalogStore()
	store.addCategory("c1", "Bebidas")
	repo := &fakeReportRepo{
		products: []repository.ProductWithCategory{
			valuedProduct("p1", "Agua sin gas", 10, "1.25"),
			valuedProduct("p2", "Jugo de mango", 4, "3.10"),
		},
		movements: []repository.MovementWithProduct{
			{
				Movement: entity.StockMovement{
					ID: "m1", ProductID: "p1", Direction: entity.DirectionIn,
					Quantity: 20, NewQuantity: 20,
					CreatedAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
				},
				ProductName: "Agua sin gas",
			},
			{
				Movement: entity.StockMovement{
					ID: "m2", ProductID: "p1", Direction: entity.DirectionOut,
					Quantity: 8, PreviousQuantity: 20, NewQuantity: 12,
					CreatedAt: time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC),
				},
				ProductName: "Agua sin gas",
			},
		},
	}
	uc := newReportUseCase(repo, store)

	out, err := uc.BuildReport(context.Background(), dto.ReportFilterRequest{
		CategoryID: "c1",
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-30",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bebidas", out.Filters.CategoryName)
	assert.False(t, out.GeneratedAt.IsZero())
	assert.Len(t, out.Products, 2)
	assert.Len(t, out.Movements, 2)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("24.90")), "12.50 + 12.40, fue %s", out.TotalValue)
	assert.Equal(t, int64(20), out.TotalInflow)
	assert.Equal(t, int64(8), out.TotalOutflow)
	assert.Equal(t, int64(12), out.NetChange)

	assert.Equal(t, "c1", repo.productFilter.CategoryID)
	assert.Equal(t, "c1", repo.movementFilter.CategoryID)
}

// Caso 11: filtros inválidos del reporte.
func TestBuildReport_FiltrosInvalidos(t *testing.T) {
	uc := newReportUseCase(&fakeReportRepo{}, newCatalogStore())

	_, err := uc.BuildReport(context.Background(), dto.ReportFilterRequest{CategoryID: "no-existe"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.BuildReport(context.Background(), dto.ReportFilterRequest{StartDate: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
