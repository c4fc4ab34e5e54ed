// @title        Employee API
// @version      1.0
// @description  Fachada sobre la API de empleados upstream: consultas, agregados y escritura con reintentos.
// @BasePath     /
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

	_ "github.com/jhoicas/employee-api/docs"
	"github.com/jhoicas/employee-api/internal/bootstrap"
	"github.com/jhoicas/employee-api/internal/infrastructure/metrics"
	"github.com/jhoicas/employee-api/internal/infrastructure/ratelimit"
	infraredis "github.com/jhoicas/employee-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/employee-api/internal/interfaces/http"
	"github.com/jhoicas/employee-api/pkg/config"
	"github.com/jhoicas/employee-api/pkg/logger"
)

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
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	employees := bootstrap.EmployeeService(cfg, log)

	store := ratelimit.NewStore(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	store.StartJanitor(ctx)
	log.Info().
		Float64("rps", store.RPS()).
		Int("burst", store.Burst()).
		Bool("per_client", cfg.RateLimit.PerClient).
		Msg("limitador del ranking configurado")

	// Estadísticas del limitador en Redis: opcionales y best-effort.
	var stats ratelimit.StatsRecorder
	if cfg.RateLimit.StatsEnabled() {
		rdb, err := infraredis.Connect(ctx, infraredis.Config{
			Addr:     cfg.RateLimit.StatsRedisAddr,
			Password: cfg.RateLimit.StatsRedisPassword,
			DB:       cfg.RateLimit.StatsRedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, estadísticas del limitador desactivadas")
		} else {
			defer rdb.Close()
			stats = infraredis.NewRateLimitStats(rdb, cfg.RateLimit.StatsPrefix, cfg.RateLimit.StatsTTL)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Employee API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Employees:   employees,
		DefaultTopN: cfg.App.TopN,
		RequestTimeout:     bootstrap.RequestTimeout(cfg),
		RetryAfter:         cfg.Retry.BaseDelay,
		RateLimit:          ratelimit.Service{Store: store, RetryAfter: cfg.RateLimit.RetryAfter},
		RateLimitPerClient: cfg.RateLimit.PerClient,
		RateLimitStats:     stats,
		Metrics:            metrics.Handler(),
		Log:                log,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
