package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, COALESCE(barcode, ''), category_id, quantity, threshold, unit_price, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Barcode, &p.CategoryID,
		&p.Quantity, &p.Threshold, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Quantity inicia en 0: el stock inicial
// entra por el libro de movimientos.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, barcode, category_id, quantity, threshold, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, nullIfEmpty(product.Barcode), product.CategoryID,
		product.Quantity, product.Threshold, product.UnitPrice, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE)
// dentro de la transacción actual.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// productWhere arma las condiciones del filtro; devuelve el SQL y los args.
func productWhere(filter repository.ProductFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR barcode ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List lista productos según el filtro, los más nuevos primero.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	where, args := productWhere(filter)
	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count cuenta productos según el filtro.
func (r *ProductRepo) Count(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	where, args := productWhere(filter)
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// CountByCategory cuenta los productos de una categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

// Update actualiza los campos de identidad del producto. Quantity queda
// fuera: solo la toca UpdateQuantity desde el ledger.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, barcode = $3, category_id = $4, threshold = $5, unit_price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, nullIfEmpty(product.Barcode), product.CategoryID,
		product.Threshold, product.UnitPrice, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza la cantidad en caché (solo lo usa el ledger).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int64, updatedAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// Delete elimina un producto. El FK RESTRICT de stock_movements respalda el
// protocolo de borrado: con historial la eliminación directa falla.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductHasMovements
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
