package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/application/ledger"
	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

// OpeningStockNote nota del movimiento de ingreso inicial.
const OpeningStockNote = "ingreso inicial de stock"

// DefaultThreshold umbral de stock crítico cuando el cliente no envía uno.
const DefaultThreshold = 10

// ProductUseCase casos de uso CRUD para productos. Quantity nunca se edita
// por acá: el alta con stock inicial y el borrado forzado pasan por el
// libro de movimientos dentro de una transacción.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
	txRunner     ledger.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
	txRunner ledger.TxRunner,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
		txRunner:     txRunner,
	}
}

// Create crea un producto. Con InitialQuantity > 0 el producto y su
// movimiento de ingreso inicial se escriben en la misma transacción:
// nunca existe un producto con stock sin su movimiento de origen.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.InitialQuantity < 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	threshold := int64(DefaultThreshold)
	if in.Threshold != nil {
		if *in.Threshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.Threshold
	}

	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		Barcode:    strings.TrimSpace(in.Barcode),
		CategoryID: category.ID,
		Quantity:   0,
		Threshold:  threshold,
		UnitPrice:  in.UnitPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialQuantity == 0 {
			return nil
		}
		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        product.ID,
			Direction:        entity.DirectionIn,
			Quantity:         in.InitialQuantity,
			PreviousQuantity: 0,
			NewQuantity:      in.InitialQuantity,
			Note:             OpeningStockNote,
			CreatedAt:        now,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		return productRepo.UpdateQuantity(ctx, product.ID, in.InitialQuantity, now)
	})
	if err != nil {
		return nil, err
	}

	product.Quantity = in.InitialQuantity
	return toProductResponse(product, category.Name), nil
}

// GetByID obtiene un producto con sus campos derivados.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	categoryName := ""
	if category, err := uc.categoryRepo.GetByID(ctx, product.CategoryID); err == nil && category != nil {
		categoryName = category.Name
	}
	return toProductResponse(product, categoryName), nil
}

// List lista productos con filtro por categoría, búsqueda y paginación.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	filter.Limit = page.Limit
	filter.Offset = page.Offset

	total, err := uc.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	list, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, ""))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update actualiza campos de identidad del producto. Quantity queda fuera:
// solo cambia a través de movimientos.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = category.ID
	}
	if in.Threshold != nil {
		if *in.Threshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Threshold = *in.Threshold
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	product.UpdatedAt = time.Now().UTC()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	categoryName := ""
	if category, err := uc.categoryRepo.GetByID(ctx, product.CategoryID); err == nil && category != nil {
		categoryName = category.Name
	}
	return toProductResponse(product, categoryName), nil
}

// Delete implementa el protocolo de borrado en dos pasos. Sin force y con
// movimientos registrados devuelve el conteo para que el cliente confirme;
// con force borra historial y producto en la misma transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id string, force bool) (*dto.DeleteProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	count, err := uc.movementRepo.CountByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := uc.productRepo.Delete(ctx, id); err != nil {
			return nil, err
		}
		return &dto.DeleteProductResponse{Deleted: true}, nil
	}
	if !force {
		return &dto.DeleteProductResponse{Deleted: false, MovementCount: count}, nil
	}

	var deleted int64
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		n, err := movementRepo.DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		deleted = n
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteProductResponse{Deleted: true, DeletedMovements: deleted}, nil
}

// ListMovements historial de movimientos de un producto, del más reciente
// al más antiguo.
func (uc *ProductUseCase) ListMovements(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	page.DefaultPage()
	list, err := uc.movementRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m, product.Name))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toProductResponse(p *entity.Product, categoryName string) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Barcode:      p.Barcode,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		Quantity:     p.Quantity,
		Threshold:    p.Threshold,
		UnitPrice:    p.UnitPrice,
		TotalValue:   p.TotalValue().Round(2),
		StockStatus:  p.StockStatus(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement, productName string) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductName:      productName,
		Direction:        m.Direction,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Note:             m.Note,
		CreatedAt:        m.CreatedAt,
	}
}
