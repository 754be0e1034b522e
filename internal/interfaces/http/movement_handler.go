package http

import (
	"errors"
	"io"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/application/ledger"
	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/infrastructure/excel"
	"github.com/invorya/stocktrack-api/pkg/metrics"
)

// MovementHandler maneja el registro de movimientos del libro y el flujo
// de conteo físico (plantilla y carga de hoja).
type MovementHandler struct {
	apply   *ledger.ApplyMovementUseCase
	recount *ledger.RecountUseCase
	reports *usecase.ReportUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	apply *ledger.ApplyMovementUseCase,
	recount *ledger.RecountUseCase,
	reports *usecase.ReportUseCase,
) *MovementHandler {
	return &MovementHandler{apply: apply, recount: recount, reports: reports}
}

// Apply godoc
// @Summary      Registrar movimiento de stock
// @Description  Registra una entrada (IN) o salida (OUT) en el libro y actualiza la cantidad en caché en la misma transacción. Una salida que dejaría stock negativo se rechaza completa.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	result, err := h.apply.Apply(c.Context(), ledger.ApplyMovementInput{
		ProductID: in.ProductID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		Note:      in.Note,
	})
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			metrics.MovementsRejectedTotal.WithLabelValues(reason).Inc()
		}
		return errorResponse(c, err)
	}
	metrics.MovementsTotal.WithLabelValues(result.Movement.Direction).Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.ApplyMovementResponse{
		Movement:    movementToDTO(result.Movement),
		NewQuantity: result.NewQuantity,
		Critical:    result.Critical,
	})
}

// List godoc
// @Summary      Listar movimientos del libro
// @Tags         movements
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        start_date   query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        end_date     query  string  false  "Hasta (YYYY-MM-DD, exclusivo)"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var req dto.MovementListRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	out, err := h.reports.ListMovements(c.Context(), req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// RecountTemplate godoc
// @Summary      Descargar plantilla de conteo físico
// @Description  Hoja xlsx con los productos actuales y una columna counted_quantity para completar a mano.
// @Tags         movements
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Success      200  {file}  file
// @Router       /api/movements/recount/template [get]
func (h *MovementHandler) RecountTemplate(c *fiber.Ctx) error {
	products, err := h.reports.ListProductsWithCategory(c.Context(), c.Query("category_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	data, name, err := excel.BuildRecountTemplate(products)
	if err != nil {
		return errorResponse(c, err)
	}
	return sendDownload(c, data, name, contentTypeXLSX)
}

// ApplyRecount godoc
// @Summary      Aplicar conteo físico
// @Description  Recibe la plantilla completada (multipart, campo "file") y registra un ajuste por cada diferencia entre lo contado y la caché. Las filas inválidas se reportan en skipped sin frenar el resto.
// @Tags         movements
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Hoja de conteo xlsx"
// @Success      200   {object}  dto.RecountResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements/recount [post]
func (h *MovementHandler) ApplyRecount(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "el archivo 'file' es requerido")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "no se pudo leer el archivo")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return badRequest(c, "no se pudo leer el archivo")
	}

	lines, parseSkips, err := excel.ParseRecountSheet(data)
	if err != nil {
		return errorResponse(c, err)
	}
	result, err := h.recount.ApplyRecount(c.Context(), lines)
	if err != nil {
		return errorResponse(c, err)
	}

	skips := make([]dto.RecountSkipDTO, 0, len(parseSkips)+len(result.Skipped))
	for _, s := range parseSkips {
		skips = append(skips, dto.RecountSkipDTO{Row: s.Row, ProductID: s.ProductID, Reason: s.Reason})
	}
	for _, s := range result.Skipped {
		skips = append(skips, dto.RecountSkipDTO{Row: s.Row, ProductID: s.ProductID, Reason: s.Reason})
	}
	sort.Slice(skips, func(i, j int) bool { return skips[i].Row < skips[j].Row })

	return c.JSON(dto.RecountResultResponse{
		Applied:   result.Applied,
		Unchanged: result.Unchanged,
		Skipped:   skips,
	})
}

func movementToDTO(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Direction:        m.Direction,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Note:             m.Note,
		CreatedAt:        m.CreatedAt,
	}
}

// rejectionReason etiqueta de métrica para un movimiento rechazado.
// Devuelve vacío para errores que no son de negocio.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "product_not_found"
	default:
		return ""
	}
}
