package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stocktrack-api/internal/application/ledger"
	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/infrastructure/csvexport"
	"github.com/invorya/stocktrack-api/internal/infrastructure/excel"
	"github.com/invorya/stocktrack-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	ReportUC    *usecase.ReportUseCase
	DashboardUC *usecase.DashboardUseCase

	ApplyMovement *ledger.ApplyMovementUseCase
	VerifyLedger  *ledger.VerifyLedgerUseCase
	Recount       *ledger.RecountUseCase

	ExcelWriter  *excel.ReportWriter
	PDFGenerator *pdf.Generator
	CSVWriter    *csvexport.ProductWriter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products (las rutas estáticas se registran antes que las de :id)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.VerifyLedger, deps.ReportUC, deps.CSVWriter)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/export/csv", productHandler.ExportCSV)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", productHandler.Movements)
	products.Get("/:id/ledger/verify", productHandler.VerifyLedger)

	// Stock movements y conteo físico
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.Recount, deps.ReportUC)
	movements.Post("/", movementHandler.Apply)
	movements.Get("/", movementHandler.List)
	movements.Get("/recount/template", movementHandler.RecountTemplate)
	movements.Post("/recount", movementHandler.ApplyRecount)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExcelWriter, deps.PDFGenerator)
	reports.Get("/stock-status", reportHandler.StockStatus)
	reports.Get("/category-values", reportHandler.CategoryValues)
	reports.Get("/trends", reportHandler.Trends)
	reports.Get("/top-products", reportHandler.TopProducts)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/export/excel", reportHandler.ExportExcel)
	reports.Get("/export/pdf", reportHandler.ExportPDF)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.PDFGenerator)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/export/pdf", dashboardHandler.ExportPDF)
}
