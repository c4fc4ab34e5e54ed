// Package bootstrap arma el grafo de dependencias compartido por la API y la CLI.
package bootstrap

import (
	"time"

	"github.com/jhoicas/employee-api/internal/application/ports"
	"github.com/jhoicas/employee-api/internal/application/usecase"
	"github.com/jhoicas/employee-api/internal/infrastructure/employeeapi"
	"github.com/jhoicas/employee-api/pkg/config"
	"github.com/jhoicas/employee-api/pkg/logger"
	"github.com/jhoicas/employee-api/pkg/retry"
)

// RetryPolicy traduce la configuración a la política de reintentos ante 429.
func RetryPolicy(cfg config.RetryConfig) retry.Policy {
	return retry.Policy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		Multiplier:  cfg.Multiplier,
		Retryable:   usecase.IsRateLimited,
	}
}

// EmployeeService cliente upstream + orquestador con reintentos + decorador de logging.
func EmployeeService(cfg *config.Config, log *logger.Logger) ports.EmployeeService {
	client := employeeapi.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	uc := usecase.NewEmployeeUseCase(client, RetryPolicy(cfg.Retry), log.Named("usecase"))
	return usecase.NewLoggedEmployeeService(uc, log.Named("employees"))
}

// requestMargin holgura sobre el peor caso de reintentos.
const requestMargin = 10 * time.Second

// RequestTimeout tope por petición HTTP: todos los intentos con su timeout más las
// esperas del backoff entre ellos, para que el agotamiento responda antes que el timeout.
func RequestTimeout(cfg *config.Config) time.Duration {
	p := RetryPolicy(cfg.Retry)
	total := time.Duration(p.MaxAttempts)*cfg.Upstream.Timeout + requestMargin
	for attempt := 1; attempt < p.MaxAttempts; attempt++ {
		total += p.Delay(attempt)
	}
	return total
}
