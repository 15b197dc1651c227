package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/ventas-pro/internal/application/auth"
	"github.com/tu-usuario/ventas-pro/internal/application/sales"
	"github.com/tu-usuario/ventas-pro/internal/application/stock"
	"github.com/tu-usuario/ventas-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/ventas-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/ventas-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/ventas-pro/internal/interfaces/http"
	"github.com/tu-usuario/ventas-pro/pkg/config"
	"github.com/tu-usuario/ventas-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := stock.NewLedger()
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, ledger)
	receiptUC := sales.NewReceiptUseCase(saleRepo, productRepo, companyRepo, infrapdf.NewMarotoReceiptGenerator())

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	contactUC := usecase.NewContactUseCase(contactRepo)
	stockUC := usecase.NewStockUseCase(stockRepo, productRepo)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     companyUC,
		ProductUC:     productUC,
		CategoryUC:    categoryUC,
		EmployeeUC:    employeeUC,
		SupplierUC:    supplierUC,
		ContactUC:     contactUC,
		StockUC:       stockUC,
		TransactionUC: transactionUC,
		SaleUC:        saleUC,
		ReceiptUC:     receiptUC,
		JWTSecret:     cfg.JWT.Secret,
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
