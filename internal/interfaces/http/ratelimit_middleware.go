package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/employee-api/internal/application/dto"
	"github.com/jhoicas/employee-api/internal/infrastructure/metrics"
	"github.com/jhoicas/employee-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/employee-api/pkg/logger"
)

// RateLimitedMessage mensaje devuelto cuando el limitador rechaza la petición.
const RateLimitedMessage = "límite de peticiones excedido para el ranking de empleados mejor pagados, intente más tarde"

// statsTimeout tope para registrar una decisión en el StatsRecorder.
const statsTimeout = 200 * time.Millisecond

// RateLimitConfig opciones del middleware de limitación.
type RateLimitConfig struct {
	// Route nombre lógico de la ruta protegida (etiqueta de métricas y clave global).
	Route   string
	Service ratelimit.Service
	// PerClient usa la IP del cliente como clave en lugar de un bucket global.
	PerClient bool
	Stats     ratelimit.StatsRecorder
	Log       *logger.Logger
}

// RateLimitMiddleware rechaza de inmediato con 429 cuando no hay tokens; nunca encola.
func RateLimitMiddleware(cfg RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := cfg.Route
		if cfg.PerClient {
			key = c.IP()
		}
		d := cfg.Service.Decide(key)
		recordDecision(c.UserContext(), cfg, key, d.Allowed)
		if d.Allowed {
			return c.Next()
		}
		secs := int(d.RetryAfter / time.Second)
		if secs < 1 {
			secs = 1
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: RateLimitedMessage})
	}
}

func recordDecision(ctx context.Context, cfg RateLimitConfig, key string, allowed bool) {
	decision := "allowed"
	if !allowed {
		decision = "denied"
	}
	metrics.RateLimitDecisions.WithLabelValues(cfg.Route, decision).Inc()
	if cfg.Stats == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()
	err := cfg.Stats.Record(ctx, ratelimit.StatsEvent{Key: key, Route: cfg.Route, Allowed: allowed, At: time.Now()})
	if err != nil && cfg.Log != nil {
		cfg.Log.Warn().Err(err).Str("route", cfg.Route).Msg("no se pudo registrar la decisión del limitador")
	}
}
