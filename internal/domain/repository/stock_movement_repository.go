package repository

import (
	"context"

	"github.com/invorya/stocktrack-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro
// de movimientos (DIP). El libro es append-only: no hay Update.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
	// SumSignedByProduct suma las cantidades con signo del producto
	// (entradas positivas, salidas negativas). Es la fuente de verdad
	// contra la que se verifica la caché Quantity.
	SumSignedByProduct(ctx context.Context, productID string) (int64, error)
	// DeleteByProduct borra el historial completo de un producto y devuelve
	// cuántos movimientos se eliminaron. Solo lo usa el borrado forzado.
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}
