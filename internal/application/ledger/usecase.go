package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos al libro de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback. Es el único
// camino por el que cambia la cantidad de un producto.
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// ApplyMovementInput entrada para aplicar un movimiento.
type ApplyMovementInput struct {
	ProductID string
	Direction string // IN, OUT
	Quantity  int64  // siempre > 0
	Note      string
}

// ApplyMovementResult movimiento registrado y estado resultante del producto.
type ApplyMovementResult struct {
	Movement    *entity.StockMovement
	NewQuantity int64
	Critical    bool // la cantidad quedó en o bajo el umbral
}

// Apply inicia una transacción, bloquea la fila del producto, verifica que
// una salida no deje stock negativo, inserta el movimiento y actualiza la
// cantidad en caché. Commit o Rollback lo resuelve TxRunner.Run: ante
// cualquier error el estado queda exactamente como antes de la llamada.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input ApplyMovementInput) (*ApplyMovementResult, error) {
	// Validar entrada antes de tocar la BD
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidDirection(input.Direction) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var result *ApplyMovementResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del producto para serializar movimientos concurrentes
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		prev := product.Quantity
		var newQty int64
		switch input.Direction {
		case entity.DirectionIn:
			newQty = prev + input.Quantity
		case entity.DirectionOut:
			if prev < input.Quantity {
				return domain.ErrInsufficientStock
			}
			newQty = prev - input.Quantity
		}

		now := time.Now().UTC()
		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        product.ID,
			Direction:        input.Direction,
			Quantity:         input.Quantity,
			PreviousQuantity: prev,
			NewQuantity:      newQty,
			Note:             input.Note,
			CreatedAt:        now,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, newQty, now); err != nil {
			return err
		}

		result = &ApplyMovementResult{
			Movement:    mov,
			NewQuantity: newQty,
			Critical:    newQty <= product.Threshold,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
