package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
)

// RecountNote nota estándar de los ajustes generados por conteo físico.
const RecountNote = "ajuste por conteo físico"

// RecountLine una fila de la hoja de conteo ya parseada.
type RecountLine struct {
	Row             int // fila de la hoja (1-based), para reportar errores
	ProductID       string
	CountedQuantity int64
}

// RecountSkip fila que no se pudo aplicar y su motivo.
type RecountSkip struct {
	Row       int
	ProductID string
	Reason    string
}

// RecountResult resumen de un conteo aplicado.
type RecountResult struct {
	Applied   int
	Unchanged int
	Skipped   []RecountSkip
}

// RecountUseCase reconcilia un conteo físico contra el libro: cada
// diferencia entre lo contado y la caché se registra como movimiento
// compensatorio (IN si faltaba, OUT si sobraba). Nunca edita el libro.
type RecountUseCase struct {
	apply       *ApplyMovementUseCase
	productRepo repository.ProductRepository
}

// NewRecountUseCase construye el caso de uso.
func NewRecountUseCase(apply *ApplyMovementUseCase, productRepo repository.ProductRepository) *RecountUseCase {
	return &RecountUseCase{apply: apply, productRepo: productRepo}
}

// ApplyRecount procesa las filas una a una; las inválidas se reportan en
// Skipped y el resto sigue. Cada ajuste corre en su propia transacción:
// una hoja grande no retiene cientos de bloqueos de fila a la vez.
func (uc *RecountUseCase) ApplyRecount(ctx context.Context, lines []RecountLine) (*RecountResult, error) {
	result := &RecountResult{Skipped: []RecountSkip{}}

	for _, line := range lines {
		if line.ProductID == "" {
			result.Skipped = append(result.Skipped, RecountSkip{
				Row: line.Row, Reason: "product_id vacío",
			})
			continue
		}
		if line.CountedQuantity < 0 {
			result.Skipped = append(result.Skipped, RecountSkip{
				Row: line.Row, ProductID: line.ProductID, Reason: "cantidad contada negativa",
			})
			continue
		}

		product, err := uc.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			result.Skipped = append(result.Skipped, RecountSkip{
				Row: line.Row, ProductID: line.ProductID, Reason: "producto no encontrado",
			})
			continue
		}

		diff := line.CountedQuantity - product.Quantity
		if diff == 0 {
			result.Unchanged++
			continue
		}

		input := ApplyMovementInput{
			ProductID: line.ProductID,
			Direction: entity.DirectionIn,
			Quantity:  diff,
			Note:      RecountNote,
		}
		if diff < 0 {
			input.Direction = entity.DirectionOut
			input.Quantity = -diff
		}
		if _, err := uc.apply.Apply(ctx, input); err != nil {
			// El stock pudo moverse entre la lectura y el ajuste; la fila
			// se reporta y el conteo continúa.
			if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrNotFound) {
				result.Skipped = append(result.Skipped, RecountSkip{
					Row: line.Row, ProductID: line.ProductID,
					Reason: fmt.Sprintf("ajuste rechazado: %v", err),
				})
				continue
			}
			return nil, err
		}
		result.Applied++
	}

	return result, nil
}
