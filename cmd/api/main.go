package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/fiado-ledger/internal/application/credit"
	"github.com/tu-usuario/fiado-ledger/internal/application/inventory"
	"github.com/tu-usuario/fiado-ledger/internal/application/reconciliation"
	"github.com/tu-usuario/fiado-ledger/internal/infrastructure/cache"
	"github.com/tu-usuario/fiado-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/fiado-ledger/internal/interfaces/http"
	"github.com/tu-usuario/fiado-ledger/pkg/config"
	"github.com/tu-usuario/fiado-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Señal de conectividad: las mutaciones rechazan de inmediato si está offline
	health := postgres.NewHealthMonitor(pool, 10*time.Second)
	health.Start(ctx)
	defer health.Stop()

	// Caché de productos (opcional): read-through, invalidada en cada mutación
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	productCache := cache.NewRedisProductCache(redisClient, 5*time.Minute)

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewCreditSaleRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLedgerUC := inventory.NewStockLedgerUseCase(txRunner, movementRepo, health, productCache)
	creditSaleUC := credit.NewCreditSaleUseCase(txRunner, stockLedgerUC, customerRepo, saleRepo, health, productCache)
	customerUC := credit.NewCustomerUseCase(customerRepo, health)
	reconciliationUC := reconciliation.NewReconciliationUseCase(
		productRepo, customerRepo, saleRepo, paymentRepo, productCache,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if !health.Connected() {
			status = "offline"
		}
		return c.JSON(fiber.Map{"status": status, "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockLedgerUC:    stockLedgerUC,
		CreditSaleUC:     creditSaleUC,
		CustomerUC:       customerUC,
		ReconciliationUC: reconciliationUC,
		JWTSecret:        cfg.JWT.Secret,
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
