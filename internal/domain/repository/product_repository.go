package repository

import (
	"context"
	"time"

	"github.com/invorya/stocktrack-api/internal/domain/entity"
)

// ProductFilter acota listados de productos.
type ProductFilter struct {
	CategoryID string
	Search     string // busca en name y barcode, sin distinguir mayúsculas
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateQuantity es exclusivo del ledger: el resto de la aplicación no
// modifica Quantity.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto dentro de la transacción
	// actual (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int64, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
