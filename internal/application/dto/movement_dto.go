package dto

import "time"

// ApplyMovementRequest body para POST /api/movements.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=IN OUT"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note"`
}

// MovementListRequest parámetros para GET /api/movements.
type MovementListRequest struct {
	ProductID  string `query:"product_id"`
	CategoryID string `query:"category_id"`
	StartDate  string `query:"start_date"` // YYYY-MM-DD
	EndDate    string `query:"end_date"`   // YYYY-MM-DD
	Limit      int    `query:"limit"`      // default 50, max 500
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name,omitempty"`
	Direction        string    `json:"direction"`
	Quantity         int64     `json:"quantity"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ApplyMovementResponse respuesta de POST /api/movements.
type ApplyMovementResponse struct {
	Movement    MovementResponse `json:"movement"`
	NewQuantity int64            `json:"new_quantity"`
	Critical    bool             `json:"critical"` // quedó en o bajo el umbral
}

// MovementListResponse lista de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Conteo físico ─────────────────────────────────────────────────────────────

// RecountSkipDTO fila de conteo que no se pudo aplicar.
type RecountSkipDTO struct {
	Row       int    `json:"row"` // fila de la hoja (1-based)
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// RecountResultResponse resumen de un conteo físico aplicado.
type RecountResultResponse struct {
	Applied   int              `json:"applied"`   // ajustes generados
	Unchanged int              `json:"unchanged"` // filas sin diferencia
	Skipped   []RecountSkipDTO `json:"skipped"`
}
