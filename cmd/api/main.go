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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/internal/scheduler"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
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

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	registry := postgres.NewRegistry(pool)
	if err := registry.Refresh(ctx); err != nil {
		// No fatal: el registry reintenta un refresh al primer Resolve fallido.
		log.Warn().Err(err).Msg("refresh inicial del registry")
	}

	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)

	itemRepo := postgres.NewItemRepository(pool, registry)
	storeRepo := postgres.NewStoreRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	provisioner := postgres.NewProvisioner(pool)
	txRunner := postgres.NewTxRunner(pool, registry)

	activityUC := usecase.NewActivityLogger(activityRepo, log)
	itemUC := usecase.NewItemUseCase(itemRepo, activityUC, m)
	storeUC := usecase.NewStoreUseCase(storeRepo, provisioner, registry, activityUC, m, log)
	saleUC := inventory.NewSaleUseCase(txRunner, txRepo, activityUC, m)
	poUC := inventory.NewPurchaseOrderUseCase(txRunner, poRepo, itemRepo, activityUC, m)

	// Refresh periódico del registry: tiendas creadas por otras instancias
	// aparecen sin esperar a un fallo de resolución.
	if cfg.Registry.RefreshCron != "" {
		sched, err := scheduler.New(registry, cfg.Registry.RefreshCron, log)
		if err != nil {
			log.Fatal().Err(err).Msg("programar refresh del registry")
		}
		sched.Start()
		defer sched.Stop()
	}

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
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:     itemUC,
		StoreUC:    storeUC,
		ActivityUC: activityUC,
		SaleUC:     saleUC,
		POUC:       poUC,
		JWTSecret:  cfg.JWT.Secret,
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
