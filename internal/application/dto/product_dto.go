package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialQuantity > 0 genera el movimiento de ingreso inicial en la misma
// transacción que el producto.
type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Barcode         string          `json:"barcode"`
	CategoryID      string          `json:"category_id" validate:"required"`
	InitialQuantity int64           `json:"initial_quantity"`
	Threshold       *int64          `json:"threshold"` // default 10 si se omite
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Quantity no se edita por acá: solo cambia a través de movimientos.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Barcode    *string          `json:"barcode"`
	CategoryID *string          `json:"category_id"`
	Threshold  *int64           `json:"threshold"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
}

// ProductResponse salida de un producto con sus campos derivados.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Barcode      string          `json:"barcode,omitempty"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Quantity     int64           `json:"quantity"`
	Threshold    int64           `json:"threshold"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalValue   decimal.Decimal `json:"total_value"`  // quantity * unit_price
	StockStatus  string          `json:"stock_status"` // critical|low|normal
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DeleteProductResponse resultado del protocolo de borrado en dos pasos.
// Deleted=false significa que el producto tiene movimientos y el cliente
// debe confirmar con ?force=true.
type DeleteProductResponse struct {
	Deleted          bool  `json:"deleted"`
	DeletedMovements int64 `json:"deleted_movements,omitempty"` // movimientos borrados con force
	MovementCount    int64 `json:"movement_count,omitempty"`    // movimientos existentes al rechazar
}

// LedgerCheckResponse resultado de la verificación caché vs libro.
type LedgerCheckResponse struct {
	ProductID      string `json:"product_id"`
	CachedQuantity int64  `json:"cached_quantity"`
	LedgerSum      int64  `json:"ledger_sum"`
	Consistent     bool   `json:"consistent"`
}
