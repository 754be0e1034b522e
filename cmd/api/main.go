package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/invorya/stocktrack-api/docs"
	"github.com/invorya/stocktrack-api/internal/application/ledger"
	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/infrastructure/csvexport"
	"github.com/invorya/stocktrack-api/internal/infrastructure/excel"
	"github.com/invorya/stocktrack-api/internal/infrastructure/migrate"
	"github.com/invorya/stocktrack-api/internal/infrastructure/pdf"
	"github.com/invorya/stocktrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/invorya/stocktrack-api/internal/interfaces/http"
	"github.com/invorya/stocktrack-api/pkg/config"
	"github.com/invorya/stocktrack-api/pkg/logger"
)

// @title        StockTrack API
// @version      1.0
// @description  API de inventario con libro de movimientos auditable: las cantidades derivan de un ledger inmutable de entradas y salidas.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.Migrate {
		if err := migrate.Up(cfg.DB.DSN()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	applyMovementUC := ledger.NewApplyMovementUseCase(txRunner)
	verifyLedgerUC := ledger.NewVerifyLedgerUseCase(productRepo, movementRepo)
	recountUC := ledger.NewRecountUseCase(applyMovementUC, productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, movementRepo, txRunner)
	reportUC := usecase.NewReportUseCase(reportRepo, categoryRepo)
	dashboardUC := usecase.NewDashboardUseCase(reportRepo)

	excelWriter := excel.NewReportWriter()
	pdfGenerator := pdf.NewGenerator()
	csvWriter := csvexport.NewProductWriter()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log.Named("http")))

	if cfg.Metrics.Enabled {
		app.Use(httpRouter.Metrics())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,

		ApplyMovement: applyMovementUC,
		VerifyLedger:  verifyLedgerUC,
		Recount:       recountUC,

		ExcelWriter:  excelWriter,
		PDFGenerator: pdfGenerator,
		CSVWriter:    csvWriter,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
