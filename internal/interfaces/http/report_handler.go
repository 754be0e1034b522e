package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/infrastructure/excel"
	"github.com/invorya/stocktrack-api/internal/infrastructure/pdf"
)

// ReportHandler expone las agregaciones de inventario y los exportadores
// Excel y PDF del reporte completo.
type ReportHandler struct {
	uc    *usecase.ReportUseCase
	excel *excel.ReportWriter
	pdf   *pdf.Generator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, excelWriter *excel.ReportWriter, pdfGen *pdf.Generator) *ReportHandler {
	return &ReportHandler{uc: uc, excel: excelWriter, pdf: pdfGen}
}

// StockStatus godoc
// @Summary      Conteo de productos por estado de stock
// @Description  critical: cantidad <= umbral; low: <= 2x umbral; normal: el resto.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.StockStatusDTO
// @Router       /api/reports/stock-status [get]
func (h *ReportHandler) StockStatus(c *fiber.Ctx) error {
	out, err := h.uc.StockStatus(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// CategoryValues godoc
// @Summary      Valor de inventario por categoría
// @Description  Suma de cantidad por precio unitario, ordenado de mayor a menor valor. Incluye categorías sin productos.
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.CategoryValueDTO
// @Router       /api/reports/category-values [get]
func (h *ReportHandler) CategoryValues(c *fiber.Ctx) error {
	out, err := h.uc.CategoryValues(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Trends godoc
// @Summary      Series de entradas y salidas por periodo
// @Description  Buckets día o semana (semana inicia lunes, UTC); los periodos sin movimientos aparecen en cero.
// @Tags         reports
// @Produce      json
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        bucket      query  string  false  "day | week"  default(day)
// @Success      200  {object}  dto.TrendResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/trends [get]
func (h *ReportHandler) Trends(c *fiber.Ctx) error {
	var req dto.TrendRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "parámetros inválidos")
	}
	out, err := h.uc.Trends(c.Context(), req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos de mayor valor de inventario
// @Description  Ordenados por valor descendente; empates se resuelven por ID ascendente.
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Cantidad de productos"  default(10)
// @Success      200  {array}   dto.TopProductDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Snapshot completo del reporte de inventario
// @Description  El mismo documento que renderizan los exportadores Excel y PDF, en JSON.
// @Tags         reports
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        start_date   query  string  false  "Movimientos desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Movimientos hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.InventoryReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	report, err := h.buildReport(c)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(report)
}

// ExportExcel godoc
// @Summary      Exportar reporte de inventario a Excel
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        start_date   query  string  false  "Movimientos desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Movimientos hasta (YYYY-MM-DD)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export/excel [get]
func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	report, err := h.buildReport(c)
	if err != nil {
		return errorResponse(c, err)
	}
	data, name, err := h.excel.Generate(report)
	if err != nil {
		return errorResponse(c, err)
	}
	return sendDownload(c, data, name, contentTypeXLSX)
}

// ExportPDF godoc
// @Summary      Exportar reporte de inventario a PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        start_date   query  string  false  "Movimientos desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Movimientos hasta (YYYY-MM-DD)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	report, err := h.buildReport(c)
	if err != nil {
		return errorResponse(c, err)
	}
	data, name, err := h.pdf.GenerateInventoryReport(report)
	if err != nil {
		return errorResponse(c, err)
	}
	return sendDownload(c, data, name, contentTypePDF)
}

func (h *ReportHandler) buildReport(c *fiber.Ctx) (*dto.InventoryReportDTO, error) {
	return h.uc.BuildReport(c.Context(), dto.ReportFilterRequest{
		CategoryID: c.Query("category_id"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
	})
}
