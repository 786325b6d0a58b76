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
	"github.com/jhoicas/produccion-glp-api/internal/application/production"
	domainprod "github.com/jhoicas/produccion-glp-api/internal/domain/production"
	infrapdf "github.com/jhoicas/produccion-glp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/produccion-glp-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/produccion-glp-api/internal/interfaces/http"
	"github.com/jhoicas/produccion-glp-api/internal/scheduler"
	"github.com/jhoicas/produccion-glp-api/pkg/config"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.Production.Timezone).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sessionRepo := postgres.NewSessionRepository(pool)
	tankRepo := postgres.NewTankConfigRepository(pool)
	registryRepo := postgres.NewFieldRegistryRepository(pool)
	centerRepo := postgres.NewCenterRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	settings := production.Settings{
		LunchBreakMinutes: cfg.Production.LunchBreakMinutes,
		Location:          cfg.Production.Location(),
		Now:               time.Now,
		Calculator:        domainprod.NewTankCalculator(domainprod.DefaultCorrectionTable()),
	}

	startUC := production.NewStartSessionUseCase(txRunner, settings, log)
	autosaveUC := production.NewAutosaveUseCase(txRunner, registryRepo, settings, log)
	closeUC := production.NewCloseSessionUseCase(txRunner, registryRepo, settings, log)
	queryUC := production.NewSessionQueryUseCase(sessionRepo, settings)
	tankToolsUC := production.NewTankToolsUseCase(tankRepo, settings)
	staleUC := production.NewStaleSessionsUseCase(sessionRepo, settings, log)

	// PDF: informe diario de producción del centro
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := production.NewReportUseCase(sessionRepo, centerRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Producción GLP API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StartSession: startUC,
		Autosave:     autosaveUC,
		CloseSession: closeUC,
		Query:        queryUC,
		Report:       reportUC,
		TankTools:    tankToolsUC,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
		Log:          log,
	})

	sched := scheduler.New(cfg.Production.StaleSweepCron, settings.Location, staleUC, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}

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
	sched.Stop()

	log.Info().Msg("aplicación detenida")
}
