package postgres

import (
	"context"
	"fmt"

	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo adaptador PostgreSQL del libro de movimientos.
// Los movimientos son inmutables: solo INSERT, nunca UPDATE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del libro de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento en el libro.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, direction, quantity, previous_quantity, new_quantity, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Direction, movement.Quantity,
		movement.PreviousQuantity, movement.NewQuantity, movement.Note, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, los más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, direction, quantity, previous_quantity, new_quantity, note, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		err := rows.Scan(
			&m.ID, &m.ProductID, &m.Direction, &m.Quantity,
			&m.PreviousQuantity, &m.NewQuantity, &m.Note, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByProduct cuenta los movimientos registrados para un producto.
func (r *StockMovementRepo) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return count, nil
}

// SumSignedByProduct suma el libro con signo (IN positivo, OUT negativo).
// Sin movimientos devuelve 0.
func (r *StockMovementRepo) SumSignedByProduct(ctx context.Context, productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'IN' THEN quantity ELSE -quantity END), 0)::bigint
		FROM stock_movements
		WHERE product_id = $1`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}

// DeleteByProduct borra el historial completo de un producto y devuelve
// cuántos movimientos se eliminaron. Solo lo invoca el borrado forzado,
// dentro de la misma transacción que elimina el producto.
func (r *StockMovementRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete stock movements: %w", err)
	}
	return tag.RowsAffected(), nil
}
