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
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/abasto-api/docs" // registro del spec swagger generado
	"github.com/jhoicas/abasto-api/internal/application/auth"
	"github.com/jhoicas/abasto-api/internal/application/ingest"
	"github.com/jhoicas/abasto-api/internal/application/ports"
	"github.com/jhoicas/abasto-api/internal/application/usecase"
	"github.com/jhoicas/abasto-api/internal/domain/repository"
	infraai "github.com/jhoicas/abasto-api/internal/infrastructure/ai"
	"github.com/jhoicas/abasto-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/abasto-api/internal/infrastructure/pdf"
	"github.com/jhoicas/abasto-api/internal/infrastructure/postgres"
	"github.com/jhoicas/abasto-api/internal/infrastructure/rates"
	httpRouter "github.com/jhoicas/abasto-api/internal/interfaces/http"
	"github.com/jhoicas/abasto-api/pkg/config"
	"github.com/jhoicas/abasto-api/pkg/logger"
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

	// Persistencia: PostgreSQL si hay DATABASE_URL; si no, store en memoria
	// (modo demo/desarrollo: los datos viven lo que viva el proceso).
	var (
		productRepo  repository.ProductRepository
		supplierRepo repository.SupplierRepository
		activityRepo repository.ActivityRepository
		userRepo     repository.UserRepository
	)
	if cfg.DB.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		productRepo = postgres.NewProductRepository(pool)
		supplierRepo = postgres.NewSupplierRepository(pool)
		activityRepo = postgres.NewActivityRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
	} else {
		log.Warn().Msg("DATABASE_URL no definido: usando store en memoria")
		store := memory.New()
		productRepo = store.Products()
		supplierRepo = store.Suppliers()
		activityRepo = store.Activity()
		userRepo = store.Users()
	}

	// Tasa de cambio Bs/USD: dolarapi con caché Redis opcional por delante.
	var rateSource ports.RateSource = rates.NewDolarAPIClient(cfg.Rates.URL)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		rateSource = rates.NewCachedSource(rateSource, rdb,
			time.Duration(cfg.Rates.TTLMinutes)*time.Minute)
	}

	// Motor de conciliación y casos de uso.
	registrar := ingest.NewSupplierRegistrar(supplierRepo)
	resolver := ingest.NewAliasResolver(productRepo)
	reconcileUC := ingest.NewReconcileUseCase(productRepo, activityRepo, registrar, nil)

	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	scanUC := usecase.NewScanUseCase(geminiSvc, resolver, rateSource)

	productUC := usecase.NewProductUseCase(productRepo, activityRepo)
	importUC := usecase.NewImportUseCase(productRepo, activityRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	activityUC := usecase.NewActivityUseCase(activityRepo)
	reportUC := usecase.NewReportUseCase(productRepo, rateSource, infrapdf.NewStockReportGenerator())

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el scan puede tardar: extracción por visión
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024, // fotos de facturas en base64
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Abasto API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		ScanUC:      scanUC,
		ReconcileUC: reconcileUC,
		ImportUC:    importUC,
		SupplierUC:  supplierUC,
		ActivityUC:  activityUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		Rates:       rateSource,
		JWTSecret:   cfg.JWT.Secret,
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
