package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de lectura para reportes y dashboard.
// Trabaja siempre sobre el pool: ninguna consulta modifica datos.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockStatusCounts clasifica el inventario completo en una sola pasada.
// critical: quantity <= threshold; low: hasta el doble del umbral.
func (r *ReportRepo) StockStatusCounts(ctx context.Context) (repository.StockStatusCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE quantity <= threshold),
			COUNT(*) FILTER (WHERE quantity > threshold AND quantity <= threshold * 2),
			COUNT(*) FILTER (WHERE quantity > threshold * 2)
		FROM products`
	var counts repository.StockStatusCounts
	err := r.q.QueryRow(ctx, query).Scan(&counts.Critical, &counts.Low, &counts.Normal)
	if err != nil {
		return repository.StockStatusCounts{}, fmt.Errorf("stock status counts: %w", err)
	}
	return counts, nil
}

// CategoryValues valoración por categoría. LEFT JOIN para incluir
// categorías sin productos con totales en cero.
func (r *ReportRepo) CategoryValues(ctx context.Context) ([]repository.CategoryValueResult, error) {
	query := `
		SELECT c.id, c.name,
			COUNT(p.id)::bigint,
			COALESCE(SUM(p.quantity), 0)::bigint,
			COALESCE(SUM(p.quantity * p.unit_price), 0) AS total_value
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY total_value DESC, c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("category values: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryValueResult
	for rows.Next() {
		var v repository.CategoryValueResult
		if err := rows.Scan(&v.CategoryID, &v.CategoryName, &v.ProductCount, &v.TotalUnits, &v.TotalValue); err != nil {
			return nil, fmt.Errorf("scan category value: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// TrendRows agrupa movimientos por bucket en el rango semiabierto [from, to).
// date_trunc sobre el timestamp en UTC para que los límites de día y de
// semana coincidan con los que calcula el use case.
func (r *ReportRepo) TrendRows(ctx context.Context, from, to time.Time, bucket string) ([]repository.TrendRow, error) {
	query := `
		SELECT date_trunc($3, created_at AT TIME ZONE 'UTC') AS bucket,
			COALESCE(SUM(quantity) FILTER (WHERE direction = 'IN'), 0)::bigint,
			COALESCE(SUM(quantity) FILTER (WHERE direction = 'OUT'), 0)::bigint
		FROM stock_movements
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY bucket
		ORDER BY bucket`
	rows, err := r.q.Query(ctx, query, from, to, bucket)
	if err != nil {
		return nil, fmt.Errorf("trend rows: %w", err)
	}
	defer rows.Close()
	var list []repository.TrendRow
	for rows.Next() {
		var t repository.TrendRow
		if err := rows.Scan(&t.Bucket, &t.Inflow, &t.Outflow); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

const productWithCategoryColumns = `p.id, p.name, COALESCE(p.barcode, ''), p.category_id,
			p.quantity, p.threshold, p.unit_price, p.created_at, p.updated_at, c.name`

func scanProductWithCategory(rows pgx.Rows) (repository.ProductWithCategory, error) {
	var pc repository.ProductWithCategory
	err := rows.Scan(
		&pc.Product.ID, &pc.Product.Name, &pc.Product.Barcode, &pc.Product.CategoryID,
		&pc.Product.Quantity, &pc.Product.Threshold, &pc.Product.UnitPrice,
		&pc.Product.CreatedAt, &pc.Product.UpdatedAt, &pc.CategoryName,
	)
	return pc, err
}

// ProductValueRows todos los productos con su categoría, para el ranking de
// valoración (el orden final lo decide el use case).
func (r *ReportRepo) ProductValueRows(ctx context.Context) ([]repository.ProductWithCategory, error) {
	query := `
		SELECT ` + productWithCategoryColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("product value rows: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductWithCategory
	for rows.Next() {
		pc, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		list = append(list, pc)
	}
	return list, rows.Err()
}

// ListProducts snapshot de productos para reportes y plantillas,
// ordenado alfabéticamente.
func (r *ReportRepo) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]repository.ProductWithCategory, error) {
	var conds []string
	var args []any
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(p.name ILIKE $%d OR p.barcode ILIKE $%d)", len(args), len(args)))
	}
	query := `
		SELECT ` + productWithCategoryColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.name, p.id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list report products: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductWithCategory
	for rows.Next() {
		pc, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		list = append(list, pc)
	}
	return list, rows.Err()
}

// ListMovements movimientos con nombre de producto, del más reciente al más
// antiguo. From/To acotan con rango semiabierto [From, To).
func (r *ReportRepo) ListMovements(ctx context.Context, filter repository.MovementReportFilter) ([]repository.MovementWithProduct, error) {
	var conds []string
	var args []any
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		conds = append(conds, fmt.Sprintf("m.product_id = $%d", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("m.created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("m.created_at < $%d", len(args)))
	}
	query := `
		SELECT m.id, m.product_id, m.direction, m.quantity,
			m.previous_quantity, m.new_quantity, m.note, m.created_at, p.name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY m.created_at DESC, m.id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list report movements: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementWithProduct
	for rows.Next() {
		var mp repository.MovementWithProduct
		err := rows.Scan(
			&mp.Movement.ID, &mp.Movement.ProductID, &mp.Movement.Direction, &mp.Movement.Quantity,
			&mp.Movement.PreviousQuantity, &mp.Movement.NewQuantity, &mp.Movement.Note,
			&mp.Movement.CreatedAt, &mp.ProductName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement row: %w", err)
		}
		list = append(list, mp)
	}
	return list, rows.Err()
}

// ── Métodos del Dashboard ─────────────────────────────────────────────────

// InventoryTotals totales globales en una sola consulta.
func (r *ReportRepo) InventoryTotals(ctx context.Context) (repository.InventoryTotals, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(quantity), 0)::bigint,
			COUNT(*) FILTER (WHERE quantity <= threshold),
			COALESCE(SUM(quantity * unit_price), 0)
		FROM products`
	var totals repository.InventoryTotals
	err := r.q.QueryRow(ctx, query).Scan(
		&totals.TotalProducts, &totals.TotalUnits, &totals.CriticalCount, &totals.TotalValue,
	)
	if err != nil {
		return repository.InventoryTotals{}, fmt.Errorf("inventory totals: %w", err)
	}
	return totals, nil
}

// MovementTotals entradas y salidas acumuladas en [from, to).
func (r *ReportRepo) MovementTotals(ctx context.Context, from, to time.Time) (repository.MovementTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE direction = 'IN'), 0)::bigint,
			COALESCE(SUM(quantity) FILTER (WHERE direction = 'OUT'), 0)::bigint
		FROM stock_movements
		WHERE created_at >= $1 AND created_at < $2`
	var totals repository.MovementTotals
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&totals.Inflow, &totals.Outflow); err != nil {
		return repository.MovementTotals{}, fmt.Errorf("movement totals: %w", err)
	}
	return totals, nil
}

// ListCriticalProducts productos en estado crítico, los más bajos primero.
func (r *ReportRepo) ListCriticalProducts(ctx context.Context) ([]repository.ProductWithCategory, error) {
	query := `
		SELECT ` + productWithCategoryColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.quantity <= p.threshold
		ORDER BY p.quantity, p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list critical products: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductWithCategory
	for rows.Next() {
		pc, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		list = append(list, pc)
	}
	return list, rows.Err()
}
