package repository

import (
	"context"

	"github.com/invorya/stocktrack-api/internal/domain/entity"
)

// CategoryWithCount es una categoría junto con su número de productos.
type CategoryWithCount struct {
	Category     entity.Category
	ProductCount int64
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]CategoryWithCount, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
