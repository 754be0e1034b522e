package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stocktrack-api/internal/application/ledger"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
)

func newRecountUseCase(store *memStore) *ledger.RecountUseCase {
	apply := ledger.NewApplyMovementUseCase(&memTxRunner{s: store})
	return ledger.NewRecountUseCase(apply, &memProductRepo{s: store})
}

// Caso 1: las diferencias del conteo generan ajustes compensatorios con la
// nota estándar; las filas sin diferencia solo se cuentan.
func TestApplyRecount_GeneraAjustesCompensatorios(t *testing.T) {
	store := newMemStore()
	store.addProduct(testProduct("p1", 10, 3))
	store.addProduct(testProduct("p2", 8, 3))
	store.addProduct(testProduct("p3", 5, 3))
	uc := newRecountUseCase(store)

	result, err := uc.ApplyRecount(context.Background(), []ledger.RecountLine{
		{Row: 2, ProductID: "p1", CountedQuantity: 12}, // sobran 2 → IN
		{Row: 3, ProductID: "p2", CountedQuantity: 3},  // faltan 5 → OUT
		{Row: 4, ProductID: "p3", CountedQuantity: 5},  // sin diferencia
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 1, result.Unchanged)
	assert.Empty(t, result.Skipped)

	assert.Equal(t, int64(12), store.products["p1"].Quantity)
	assert.Equal(t, int64(3), store.products["p2"].Quantity)
	assert.Equal(t, int64(5), store.products["p3"].Quantity)

	require.Len(t, store.movements, 2)
	byProduct := map[string]*entity.StockMovement{}
	for _, m := range store.movements {
		byProduct[m.ProductID] = m
	}
	require.Contains(t, byProduct, "p1")
	assert.Equal(t, entity.DirectionIn, byProduct["p1"].Direction)
	assert.Equal(t, int64(2), byProduct["p1"].Quantity)
	assert.Equal(t, ledger.RecountNote, byProduct["p1"].Note)
	require.Contains(t, byProduct, "p2")
	assert.Equal(t, entity.DirectionOut, byProduct["p2"].Direction)
	assert.Equal(t, int64(5), byProduct["p2"].Quantity)
}

// Caso 2: filas inválidas se reportan en Skipped con su fila de origen y el
// resto del conteo continúa.
func TestApplyRecount_FilasInvalidasNoFrenanElResto(t *testing.T) {
	store := newMemStore()
	store.addProduct(testProduct("p1", 10, 3))
	uc := newRecountUseCase(store)

	result, err := uc.ApplyRecount(context.Background(), []ledger.RecountLine{
		{Row: 2, ProductID: "", CountedQuantity: 4},
		{Row: 3, ProductID: "p1", CountedQuantity: -1},
		{Row: 4, ProductID: "fantasma", CountedQuantity: 7},
		{Row: 5, ProductID: "p1", CountedQuantity: 6},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 0, result.Unchanged)
	require.Len(t, result.Skipped, 3)

	assert.Equal(t, 2, result.Skipped[0].Row)
	assert.Equal(t, "product_id vacío", result.Skipped[0].Reason)
	assert.Equal(t, 3, result.Skipped[1].Row)
	assert.Equal(t, "cantidad contada negativa", result.Skipped[1].Reason)
	assert.Equal(t, 4, result.Skipped[2].Row)
	assert.Equal(t, "producto no encontrado", result.Skipped[2].Reason)

	assert.Equal(t, int64(6), store.products["p1"].Quantity, "la fila válida debe aplicarse")
}

// Caso 3: contar cero sobre un producto con stock genera la salida completa.
func TestApplyRecount_ConteoCeroVaciaElStock(t *testing.T) {
	store := newMemStore()
	store.addProduct(testProduct("p1", 9, 3))
	uc := newRecountUseCase(store)

	result, err := uc.ApplyRecount(context.Background(), []ledger.RecountLine{
		{Row: 2, ProductID: "p1", CountedQuantity: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, int64(0), store.products["p1"].Quantity)
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.DirectionOut, store.movements[0].Direction)
	assert.Equal(t, int64(9), store.movements[0].Quantity)
}

// Caso 4: conteo vacío → resultado vacío sin error.
func TestApplyRecount_SinFilas(t *testing.T) {
	store := newMemStore()
	uc := newRecountUseCase(store)

	result, err := uc.ApplyRecount(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, result.Applied)
	assert.Zero(t, result.Unchanged)
	assert.Empty(t, result.Skipped)
}
