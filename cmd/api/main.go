package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/pos-ledger/internal/application/auth"
	"github.com/tu-usuario/pos-ledger/internal/application/catalog"
	"github.com/tu-usuario/pos-ledger/internal/application/pos"
	"github.com/tu-usuario/pos-ledger/internal/application/projection"
	appsync "github.com/tu-usuario/pos-ledger/internal/application/sync"
	"github.com/tu-usuario/pos-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-ledger/internal/interfaces/http"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/config"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	// Repos remotos (fuente de verdad) compartidos entre tenants.
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	syncSource := postgres.NewSyncSource(pool)
	locker := appsync.NewRedisLocker(redislock.New(redisClient))
	coordinator := appsync.NewCoordinator(syncSource, locker, appsync.Options{
		PauseBetweenKinds: cfg.Sync.PauseBetweenKinds,
		LockTTL:           cfg.Sync.LockTTL,
	}, log)

	authSvc := auth.NewService(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, log)

	// Cada tenant trabaja contra su propia caché local; el hub construye el
	// bundle de casos de uso la primera vez que el tenant aparece.
	hub := httpRouter.NewHub(func(ctx context.Context, tenantID string) (*httpRouter.TenantServices, error) {
		store, err := localcache.OpenTenant(ctx, redisClient, tenantID)
		if err != nil {
			return nil, err
		}
		projector := projection.NewProjector(store)
		return &httpRouter.TenantServices{
			Store:     store,
			Projector: projector,
			Catalog: catalog.NewService(
				categoryRepo, productRepo, variantRepo,
				customerRepo, supplierRepo, saleRepo, purchaseRepo,
				store, log,
			),
			Intake: pos.NewIntakeUseCase(txRunner, variantRepo, supplierRepo, projector, store, log),
			Sale:   pos.NewCompleteSaleUseCase(saleRepo, customerRepo, store, log),
			Return: pos.NewProcessReturnUseCase(saleRepo, returnRepo, store, log),
			Debt:   pos.NewSettleDebtUseCase(txRunner, saleRepo, purchaseRepo, customerRepo, supplierRepo, store, log),
			Sync:   coordinator,
		}, nil
	})
	defer hub.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthSvc:   authSvc,
		Hub:       hub,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
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
