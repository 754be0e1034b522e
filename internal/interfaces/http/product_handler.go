package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/application/ledger"
	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/domain/repository"
	"github.com/invorya/stocktrack-api/internal/infrastructure/csvexport"
)

// ProductHandler maneja las peticiones HTTP para Product, incluida la
// verificación del libro y la exportación CSV.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	verify  *ledger.VerifyLedgerUseCase
	reports *usecase.ReportUseCase
	csv     *csvexport.ProductWriter
}

// NewProductHandler construye el handler.
func NewProductHandler(
	uc *usecase.ProductUseCase,
	verify *ledger.VerifyLedgerUseCase,
	reports *usecase.ReportUseCase,
	csv *csvexport.ProductWriter,
) *ProductHandler {
	return &ProductHandler{uc: uc, verify: verify, reports: reports, csv: csv}
}

// Create godoc
// @Summary      Crear producto
// @Description  Con initial_quantity > 0 registra el ingreso inicial en el libro dentro de la misma transacción.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        search       query  string  false  "Búsqueda por nombre o código de barras"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
	}
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.Context(), filter, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id es requerido")
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Solo campos de identidad; la cantidad cambia únicamente con movimientos.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id es requerido")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (protocolo de dos pasos)
// @Description  Con historial de movimientos responde 409 y el conteo; repetir con ?force=true borra historial y producto en una transacción.
// @Tags         products
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        force  query  bool    false  "Confirmar borrado con historial"
// @Success      200  {object}  dto.DeleteProductResponse
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id es requerido")
	}
	out, err := h.uc.Delete(c.Context(), id, c.QueryBool("force", false))
	if err != nil {
		return errorResponse(c, err)
	}
	if !out.Deleted {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "HAS_MOVEMENTS",
			Message: "el producto tiene movimientos registrados; confirme con ?force=true",
			Details: map[string]any{"movement_count": out.MovementCount},
		})
	}
	if out.DeletedMovements > 0 {
		return c.JSON(out)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Historial de movimientos del producto
// @Tags         products
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id es requerido")
	}
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.ListMovements(c.Context(), id, page)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// VerifyLedger godoc
// @Summary      Verificar consistencia caché vs libro
// @Description  Compara la cantidad en caché contra la suma con signo del libro de movimientos.
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/ledger/verify [get]
func (h *ProductHandler) VerifyLedger(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id es requerido")
	}
	check, err := h.verify.Verify(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.LedgerCheckResponse{
		ProductID:      check.ProductID,
		CachedQuantity: check.CachedQuantity,
		LedgerSum:      check.LedgerSum,
		Consistent:     check.Consistent,
	})
}

// ExportCSV godoc
// @Summary      Exportar productos a CSV
// @Description  encoding=latin1 transcodifica a Windows-1252 para sistemas heredados; por defecto UTF-8.
// @Tags         products
// @Produce      text/csv
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        encoding     query  string  false  "utf8 | latin1"  default(utf8)
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/export/csv [get]
func (h *ProductHandler) ExportCSV(c *fiber.Ctx) error {
	products, err := h.reports.ListProductsWithCategory(c.Context(), c.Query("category_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	enc := c.Query("encoding")
	data, name, err := h.csv.Generate(products, enc)
	if err != nil {
		return errorResponse(c, err)
	}
	contentType := contentTypeCSV
	if enc == csvexport.EncodingLatin1 {
		contentType = contentTypeCSVLatin1
	}
	return sendDownload(c, data, name, contentType)
}
