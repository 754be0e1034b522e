package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/domain"
)

// errorResponse traduce los errores centinela del dominio al contrato HTTP.
// Los casos que necesitan Details adicionales (p. ej. el rechazo del borrado
// con historial) se responden directamente en el handler.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrCategoryInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "CATEGORY_IN_USE", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrProductHasMovements):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "HAS_MOVEMENTS", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}

// badRequest respuesta 400 con un mensaje puntual de parseo/validación.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_INPUT", Message: message,
	})
}
