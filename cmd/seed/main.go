// seed puebla la base con categorías y productos de ejemplo para desarrollo.
//
// Uso: go run ./cmd/seed
// Es idempotente: las categorías se reutilizan por nombre y los productos
// con código de barras ya registrado se omiten. Los movimientos de ejemplo
// solo se aplican a productos creados en esta corrida.
package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/invorya/stocktrack-api/internal/application/dto"
	"github.com/invorya/stocktrack-api/internal/application/ledger"
	"github.com/invorya/stocktrack-api/internal/application/usecase"
	"github.com/invorya/stocktrack-api/internal/domain"
	"github.com/invorya/stocktrack-api/internal/domain/entity"
	"github.com/invorya/stocktrack-api/internal/infrastructure/migrate"
	"github.com/invorya/stocktrack-api/internal/infrastructure/postgres"
	"github.com/invorya/stocktrack-api/pkg/config"
	"github.com/invorya/stocktrack-api/pkg/logger"
)

type seedProduct struct {
	name      string
	barcode   string
	category  string
	quantity  int64
	threshold int64
	price     string
	outbound  int64 // salida de ejemplo tras crear, 0 para no registrar
}

var seedCategories = []dto.CreateCategoryRequest{
	{Name: "Electrónica", Description: "Equipos y accesorios electrónicos"},
	{Name: "Alimentos", Description: "Productos alimenticios no perecederos"},
	{Name: "Textil", Description: "Ropa y telas"},
}

var seedProducts = []seedProduct{
	{name: "Audífonos inalámbricos", barcode: "7701234500011", category: "Electrónica", quantity: 120, threshold: 15, price: "89.90", outbound: 35},
	{name: "Cargador USB-C 65W", barcode: "7701234500028", category: "Electrónica", quantity: 60, threshold: 10, price: "45.50", outbound: 12},
	{name: "Teclado mecánico", barcode: "7701234500035", category: "Electrónica", quantity: 8, threshold: 10, price: "150.00"},
	{name: "Café molido 500g", barcode: "7701234500042", category: "Alimentos", quantity: 200, threshold: 40, price: "12.80", outbound: 90},
	{name: "Arroz premium 1kg", barcode: "7701234500059", category: "Alimentos", quantity: 350, threshold: 50, price: "4.20", outbound: 110},
	{name: "Camiseta algodón M", barcode: "7701234500066", category: "Textil", quantity: 45, threshold: 12, price: "19.90", outbound: 5},
	{name: "Rollo de tela lino", barcode: "7701234500073", category: "Textil", quantity: 0, threshold: 5, price: "230.00"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})

	if cfg.DB.Migrate {
		if err := migrate.Up(cfg.DB.DSN()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
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
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, movementRepo, txRunner)
	applyMovementUC := ledger.NewApplyMovementUseCase(txRunner)

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, in := range seedCategories {
		created, err := categoryUC.Create(ctx, in)
		if err == nil {
			categoryIDs[in.Name] = created.ID
			log.Info().Str("category", in.Name).Msg("categoría creada")
			continue
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			log.Fatal().Err(err).Str("category", in.Name).Msg("crear categoría")
		}
		existing, err := categoryRepo.GetByName(ctx, in.Name)
		if err != nil || existing == nil {
			log.Fatal().Err(err).Str("category", in.Name).Msg("buscar categoría existente")
		}
		categoryIDs[in.Name] = existing.ID
		log.Info().Str("category", in.Name).Msg("categoría ya existe, reutilizada")
	}

	for _, sp := range seedProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			log.Fatal().Err(err).Str("product", sp.name).Msg("precio inválido")
		}
		threshold := sp.threshold
		created, err := productUC.Create(ctx, dto.CreateProductRequest{
			Name:            sp.name,
			Barcode:         sp.barcode,
			CategoryID:      categoryIDs[sp.category],
			InitialQuantity: sp.quantity,
			Threshold:       &threshold,
			UnitPrice:       price,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			log.Info().Str("product", sp.name).Msg("producto ya existe, omitido")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("product", sp.name).Msg("crear producto")
		}
		log.Info().Str("product", sp.name).Int64("quantity", sp.quantity).Msg("producto creado")

		if sp.outbound > 0 {
			_, err := applyMovementUC.Apply(ctx, ledger.ApplyMovementInput{
				ProductID: created.ID,
				Direction: entity.DirectionOut,
				Quantity:  sp.outbound,
				Note:      "venta de ejemplo (seed)",
			})
			if err != nil {
				log.Fatal().Err(err).Str("product", sp.name).Msg("movimiento de ejemplo")
			}
		}
	}

	log.Info().Msg("seed completado")
}
