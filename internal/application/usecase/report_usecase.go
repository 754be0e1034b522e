package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

// Buckets de la serie de tendencias.
const (
	BucketDay  = "day"
	BucketWeek = "week"
)

const (
	dateLayout         = "2006-01-02"
	defaultTrendDays   = 30  // rango por defecto de la serie
	maxTrendDays       = 366 // tope del rango para acotar el relleno de buckets
	defaultTopProducts = 10
	maxTopProducts     = 100
	defaultMovementCap = 50
	maxMovementCap     = 500
)

// ReportUseCase agregaciones de solo lectura: estado de stock, valoración
// por categoría, tendencias de movimiento, ranking por valor y el snapshot
// de reporte que consumen los exportadores.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	categoryRepo repository.CategoryRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	categoryRepo repository.CategoryRepository,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		categoryRepo: categoryRepo,
	}
}

// StockStatus clasifica el catálogo completo en critical/low/normal.
func (uc *ReportUseCase) StockStatus(ctx context.Context) (*dto.StockStatusDTO, error) {
	counts, err := uc.reportRepo.StockStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StockStatusDTO{
		Critical: counts.Critical,
		Low:      counts.Low,
		Normal:   counts.Normal,
		Total:    counts.Critical + counts.Low + counts.Normal,
	}, nil
}

// CategoryValues devuelve la valoración de cada categoría, incluidas las
// vacías (en cero), ordenada por valor descendente.
func (uc *ReportUseCase) CategoryValues(ctx context.Context) ([]dto.CategoryValueDTO, error) {
	results, err := uc.reportRepo.CategoryValues(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryValueDTO, 0, len(results))
	for _, r := range results {
		items = append(items, dto.CategoryValueDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			ProductCount: r.ProductCount,
			TotalUnits:   r.TotalUnits,
			TotalValue:   r.TotalValue.Round(2),
		})
	}
	return items, nil
}

// Trends arma la serie de entradas/salidas por bucket. La serie no tiene
// huecos: los buckets sin actividad se rellenan con ceros desde start
// hasta end inclusive.
func (uc *ReportUseCase) Trends(ctx context.Context, in dto.TrendRequest) (*dto.TrendResponse, error) {
	bucket := in.Bucket
	if bucket == "" {
		bucket = BucketDay
	}
	if bucket != BucketDay && bucket != BucketWeek {
		return nil, domain.ErrInvalidInput
	}

	// 1. Resolver el rango: por defecto los últimos 30 días
	now := time.Now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.EndDate != "" {
		parsed, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		end = parsed
	}
	start := end.AddDate(0, 0, -(defaultTrendDays - 1))
	if in.StartDate != "" {
		parsed, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		start = parsed
	}
	if start.After(end) {
		return nil, domain.ErrInvalidInput
	}
	if end.Sub(start) > maxTrendDays*24*time.Hour {
		return nil, domain.ErrInvalidInput
	}

	// 2. Consultar los buckets con actividad ([from, to) semiabierto)
	from, to := start, end.AddDate(0, 0, 1)
	if bucket == BucketWeek {
		from = weekStart(start)
		to = weekStart(end).AddDate(0, 0, 7)
	}
	rows, err := uc.reportRepo.TrendRows(ctx, from, to, bucket)
	if err != nil {
		return nil, err
	}
	byLabel := make(map[string]repository.TrendRow, len(rows))
	for _, r := range rows {
		byLabel[r.Bucket.UTC().Format(dateLayout)] = r
	}

	// 3. Rellenar la serie completa con ceros donde no hubo actividad
	step := func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	cursor, last := start, end
	if bucket == BucketWeek {
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
		cursor, last = weekStart(start), weekStart(end)
	}
	items := make([]dto.TrendBucketDTO, 0)
	for ; !cursor.After(last); cursor = step(cursor) {
		label := cursor.Format(dateLayout)
		row := byLabel[label]
		items = append(items, dto.TrendBucketDTO{
			Label:   label,
			Inflow:  row.Inflow,
			Outflow: row.Outflow,
			Net:     row.Inflow - row.Outflow,
		})
	}

	return &dto.TrendResponse{
		Bucket:    bucket,
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Items:     items,
	}, nil
}

// TopProducts devuelve los n productos de mayor valor de inventario.
// El orden es valor descendente y, a igual valor, ID ascendente para que
// el ranking sea determinista.
func (uc *ReportUseCase) TopProducts(ctx context.Context, limit int) ([]dto.TopProductDTO, error) {
	if limit <= 0 {
		limit = defaultTopProducts
	}
	if limit > maxTopProducts {
		limit = maxTopProducts
	}

	rows, err := uc.reportRepo.ProductValueRows(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TopProductDTO{
			ProductID:    r.Product.ID,
			Name:         r.Product.Name,
			CategoryName: r.CategoryName,
			Quantity:     r.Product.Quantity,
			UnitPrice:    r.Product.UnitPrice,
			TotalValue:   r.Product.TotalValue().Round(2),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.TotalValue.Equal(b.TotalValue) {
			return a.TotalValue.GreaterThan(b.TotalValue)
		}
		return a.ProductID < b.ProductID
	})
	if len(items) > limit {
		items = items[:limit]
	}
	for i := range items {
		items[i].Rank = i + 1
	}
	return items, nil
}

// ListMovements lista movimientos con nombre de producto para la vista de
// reportes, con filtros por producto, categoría y rango de fechas.
func (uc *ReportUseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) ([]dto.MovementResponse, error) {
	from, to, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultMovementCap
	}
	if limit > maxMovementCap {
		limit = maxMovementCap
	}

	rows, err := uc.reportRepo.ListMovements(ctx, repository.MovementReportFilter{
		ProductID:  in.ProductID,
		CategoryID: in.CategoryID,
		From:       from,
		To:         to,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, *toMovementResponse(&r.Movement, r.ProductName))
	}
	return items, nil
}

// ListProductsWithCategory lista productos con nombre de categoría para
// exportadores (CSV, plantilla de conteo).
func (uc *ReportUseCase) ListProductsWithCategory(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	rows, err := uc.reportRepo.ListProducts(ctx, repository.ProductFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(rows))
	for _, r := range rows {
		p := r.Product
		items = append(items, *toProductResponse(&p, r.CategoryName))
	}
	return items, nil
}

// BuildReport arma el snapshot completo del reporte de inventario. Los
// exportadores Excel/PDF renderizan este DTO tal cual, sin consultar nada.
func (uc *ReportUseCase) BuildReport(ctx context.Context, in dto.ReportFilterRequest) (*dto.InventoryReportDTO, error) {
	from, to, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	filters := dto.ReportFilterDTO{StartDate: in.StartDate, EndDate: in.EndDate}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		filters.CategoryID = category.ID
		filters.CategoryName = category.Name
	}

	productRows, err := uc.reportRepo.ListProducts(ctx, repository.ProductFilter{CategoryID: in.CategoryID})
	if err != nil {
		return nil, err
	}
	movementRows, err := uc.reportRepo.ListMovements(ctx, repository.MovementReportFilter{
		CategoryID: in.CategoryID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, err
	}

	report := &dto.InventoryReportDTO{
		GeneratedAt: time.Now().UTC(),
		Filters:     filters,
		Products:    make([]dto.ProductResponse, 0, len(productRows)),
		Movements:   make([]dto.MovementResponse, 0, len(movementRows)),
		TotalValue:  decimal.Zero,
	}
	for _, r := range productRows {
		p := r.Product
		report.Products = append(report.Products, *toProductResponse(&p, r.CategoryName))
		report.TotalValue = report.TotalValue.Add(p.TotalValue())
	}
	for _, r := range movementRows {
		report.Movements = append(report.Movements, *toMovementResponse(&r.Movement, r.ProductName))
		if r.Movement.Direction == entity.DirectionIn {
			report.TotalInflow += r.Movement.Quantity
		} else {
			report.TotalOutflow += r.Movement.Quantity
		}
	}
	report.TotalValue = report.TotalValue.Round(2)
	report.NetChange = report.TotalInflow - report.TotalOutflow

	return report, nil
}

// weekStart devuelve el lunes de la semana de t (medianoche UTC).
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7 // domingo cierra la semana, no la abre
	}
	return day.AddDate(0, 0, -(wd - 1))
}

// parseRange convierte fechas YYYY-MM-DD opcionales en un rango
// [from, to) semiabierto; to incluye el día final completo.
func parseRange(startDate, endDate string) (from, to *time.Time, err error) {
	if startDate != "" {
		parsed, perr := time.Parse(dateLayout, startDate)
		if perr != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		from = &parsed
	}
	if endDate != "" {
		parsed, perr := time.Parse(dateLayout, endDate)
		if perr != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		endExclusive := parsed.AddDate(0, 0, 1)
		to = &endExclusive
		if from != nil && from.After(parsed) {
			return nil, nil, domain.ErrInvalidInput
		}
	}
	return from, to, nil
}
