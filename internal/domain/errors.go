package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrCategoryInUse       = errors.New("la categoría tiene productos asociados")
	ErrProductHasMovements = errors.New("el producto tiene movimientos registrados")
)
