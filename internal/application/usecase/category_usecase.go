package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create crea una categoría. El nombre es único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, 0), nil
}

// GetByID obtiene una categoría con su conteo de productos.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category, count), nil
}

// List lista todas las categorías con sus conteos.
func (uc *CategoryUseCase) List(ctx context.Context) (*dto.CategoryListResponse, error) {
	list, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(&c.Category, c.ProductCount))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Update actualiza nombre y descripción. El nombre sigue siendo único.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if name != category.Name {
			existing, err := uc.categoryRepo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicate
			}
		}
		category.Name = name
	}
	if in.Description != nil {
		category.Description = strings.TrimSpace(*in.Description)
	}
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	count, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category, count), nil
}

// Delete elimina una categoría solo si no tiene productos asociados.
// Los productos no quedan huérfanos ni se borran en cascada: primero hay
// que reasignarlos o eliminarlos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}
	return uc.categoryRepo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category, productCount int64) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		ProductCount: productCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
