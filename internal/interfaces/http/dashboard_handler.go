package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/infrastructure/pdf"
)

// DashboardHandler expone el resumen operativo y su exportación PDF.
type DashboardHandler struct {
	uc  *usecase.DashboardUseCase
	pdf *pdf.Generator
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, pdfGen *pdf.Generator) *DashboardHandler {
	return &DashboardHandler{uc: uc, pdf: pdfGen}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Description  Totales de inventario, productos en estado crítico, movimientos recientes y entradas/salidas de los últimos 30 días.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar resumen del dashboard a PDF
// @Tags         dashboard
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/dashboard/export/pdf [get]
func (h *DashboardHandler) ExportPDF(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	data, name, err := h.pdf.GenerateDashboardSummary(summary)
	if err != nil {
		return errorResponse(c, err)
	}
	return sendDownload(c, data, name, contentTypePDF)
}
