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

	_ "github.com/invorya/stock-recon/docs"
	appanalytics "github.com/invorya/stock-recon/internal/application/analytics"
	"github.com/invorya/stock-recon/internal/application/auth"
	"github.com/invorya/stock-recon/internal/application/reconcile"
	"github.com/invorya/stock-recon/internal/application/usecase"
	"github.com/invorya/stock-recon/internal/docstore"
	"github.com/invorya/stock-recon/internal/docstore/memstore"
	"github.com/invorya/stock-recon/internal/domain/ident"
	"github.com/invorya/stock-recon/internal/domain/repository"
	"github.com/invorya/stock-recon/internal/infrastructure/postgres"
	httpRouter "github.com/invorya/stock-recon/internal/interfaces/http"
	"github.com/invorya/stock-recon/pkg/config"
	"github.com/invorya/stock-recon/pkg/logger"
)

// @title         Stock Recon API
// @version       1.0
// @description   Conciliación de stock por bodega: catálogo, guardado secuencial y verificación.
// @BasePath      /
//
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Escribe "Bearer" seguido de un espacio y el token JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacén de documentos: PostgreSQL si hay DB_URL, en memoria si no.
	var (
		store         docstore.DeleteStore
		analyticsRepo repository.AnalyticsRepository
	)
	if cfg.DB.URL != "" {
		if cfg.DB.Migrate {
			if err := postgres.RunMigrations(cfg.DB.URL, cfg.DB.MigrationsDir); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Str("dir", cfg.DB.MigrationsDir).Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
		analyticsRepo = postgres.NewAnalyticsRepository(pool)
	} else {
		log.Warn().Msg("DB_URL vacío: almacén en memoria, los datos no sobreviven al proceso")
		mem := memstore.New()
		store = mem
		analyticsRepo = appanalytics.NewStoreAnalytics(mem)
	}

	var sanitizerOpts []ident.Option
	if cfg.Sanitize.Unicode {
		sanitizerOpts = append(sanitizerOpts, ident.WithUnicodeFolding())
	}
	sanitizer := ident.NewSanitizer(sanitizerOpts...)

	stockSvc := reconcile.NewService(store, sanitizer, log.Zerolog())
	stockReader := reconcile.NewReader(store)
	warehouseUC := usecase.NewWarehouseUseCase(store, sanitizer)
	productUC := usecase.NewProductUseCase(store)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	authUC := auth.NewAuthUseCase(store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.TTLMinutes,
		Issuer:     cfg.JWT.Issuer,
	})

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
		FilePath: cfg.Swagger.FilePath,
		Path:     "docs",
		Title:    "Stock Recon API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		WarehouseUC: warehouseUC,
		ProductUC:   productUC,
		StockSvc:    stockSvc,
		StockReader: stockReader,
		DashboardUC: dashboardUC,
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
