package ledger

import (
	"context"

	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

// VerifyLedgerUseCase compara la cantidad en caché de un producto contra la
// suma con signo de su libro de movimientos. Una discrepancia indica
// corrupción de datos o escrituras por fuera del ledger.
type VerifyLedgerUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewVerifyLedgerUseCase construye el caso de uso.
func NewVerifyLedgerUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *VerifyLedgerUseCase {
	return &VerifyLedgerUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// LedgerCheck resultado de la verificación.
type LedgerCheck struct {
	ProductID      string
	CachedQuantity int64
	LedgerSum      int64
	Consistent     bool
}

// Verify recalcula la cantidad desde el libro y la compara con la caché.
// Es una lectura: nunca corrige; la corrección se hace con movimientos
// compensatorios una vez investigada la causa.
func (uc *VerifyLedgerUseCase) Verify(ctx context.Context, productID string) (*LedgerCheck, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	sum, err := uc.movementRepo.SumSignedByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &LedgerCheck{
		ProductID:      productID,
		CachedQuantity: product.Quantity,
		LedgerSum:      sum,
		Consistent:     product.Quantity == sum,
	}, nil
}
