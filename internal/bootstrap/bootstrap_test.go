package bootstrap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/employee-api/internal/bootstrap"
	"github.com/jhoicas/employee-api/pkg/config"
	"github.com/jhoicas/employee-api/pkg/logger"
)

func TestRetryPolicy_DesdeConfiguracion(t *testing.T) {
	p := bootstrap.RetryPolicy(config.RetryConfig{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2})

	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, time.Second, p.Delay(1))
	assert.Equal(t, 2*time.Second, p.Delay(2))
	require.NotNil(t, p.Retryable)
}

func TestRequestTimeout_IncluyeLasEsperasDelBackoff(t *testing.T) {
	cfg := &config.Config{
		Upstream: config.UpstreamConfig{Timeout: 5 * time.Second},
		Retry:    config.RetryConfig{MaxAttempts: 3, BaseDelay: 10 * time.Second, Multiplier: 2},
	}

	// 3×5s de intentos + 10s + 20s de esperas + 10s de holgura
	assert.Equal(t, 55*time.Second, bootstrap.RequestTimeout(cfg))
}

func TestRequestTimeout_UnSoloIntentoSinEsperas(t *testing.T) {
	cfg := &config.Config{
		Upstream: config.UpstreamConfig{Timeout: 2 * time.Second},
		Retry:    config.RetryConfig{MaxAttempts: 1, BaseDelay: time.Second, Multiplier: 2},
	}

	assert.Equal(t, 12*time.Second, bootstrap.RequestTimeout(cfg))
}

func TestEmployeeService_ConsultaElUpstreamConfigurado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"1","employee_name":"Ana","employee_salary":300,"employee_age":30,"employee_title":"Dev"}],"status":"ok"}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{BaseURL: srv.URL, Timeout: time.Second},
		Retry:    config.RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond, Multiplier: 2},
	}
	svc := bootstrap.EmployeeService(cfg, logger.Nop())

	out, err := svc.HighestSalary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 300, out.Data)
}
