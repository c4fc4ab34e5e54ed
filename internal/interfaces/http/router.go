package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/employee-api/internal/application/ports"
	"github.com/jhoicas/employee-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/employee-api/pkg/logger"
)

// TopEarningRoute nombre lógico de la ruta limitada.
const TopEarningRoute = "top-10-earning"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Employees      ports.EmployeeService
	DefaultTopN    int
	RequestTimeout time.Duration
	// RetryAfter sugerido al cliente cuando el upstream agota los reintentos.
	RetryAfter time.Duration

	RateLimit          ratelimit.Service
	RateLimitPerClient bool
	RateLimitStats     ratelimit.StatsRecorder

	// Metrics si no es nil se expone en GET /metrics.
	Metrics http.Handler
	Log     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api/v1", RequestLogger(log.Named("http")))

	employees := api.Group("/employees")
	h := NewEmployeeHandler(deps.Employees, deps.DefaultTopN, deps.RequestTimeout, deps.RetryAfter)
	limiter := RateLimitMiddleware(RateLimitConfig{
		Route:     TopEarningRoute,
		Service:   deps.RateLimit,
		PerClient: deps.RateLimitPerClient,
		Stats:     deps.RateLimitStats,
		Log:       log.Named("ratelimit"),
	})

	// Las rutas fijas se registran antes de /:id
	employees.Get("/", h.List)
	employees.Get("/search/:searchString", h.Search)
	employees.Get("/highest-salary", h.HighestSalary)
	employees.Get("/"+TopEarningRoute, limiter, h.TopEarners)
	employees.Get("/:id", h.GetByID)
	employees.Post("/", h.Create)
	employees.Delete("/:id", h.Delete)
}
