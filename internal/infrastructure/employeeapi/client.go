package employeeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/employee-api/internal/application/ports"
	"github.com/jhoicas/employee-api/internal/domain"
	"github.com/jhoicas/employee-api/internal/domain/entity"
	"github.com/jhoicas/employee-api/internal/infrastructure/metrics"
)

// Verificar en tiempo de compilación que Client implementa EmployeeAPI.
var _ ports.EmployeeAPI = (*Client)(nil)

const maxBodyBytes = 1 << 20

// Nombres de operación usados en métricas y errores.
const (
	opList   = "list"
	opGet    = "get_by_id"
	opCreate = "create"
	opDelete = "delete_by_name"
)

// StatusError conserva el status y el cuerpo de una respuesta no 2xx.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client adaptador HTTP del servicio de empleados. Es un adaptador de protocolo puro:
// una llamada por operación, sin reintentos.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option personaliza el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transportes propios).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient construye el adaptador. timeout acota cada llamada para que una petición
// colgada termine como error transitorio en lugar de bloquear al llamador.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAll implementa GET {base}.
func (c *Client) ListAll(ctx context.Context) (*entity.EmployeeListing, error) {
	status, body, err := c.do(ctx, opList, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	if err := classify(opList, http.MethodGet, c.baseURL, status, body); err != nil {
		return nil, err
	}
	if emptyBody(body) {
		return &entity.EmployeeListing{}, nil
	}
	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: deserializar listado: %v", domain.ErrTransient, err)
	}
	return toListing(resp), nil
}

// GetByID implementa GET {base}/{id}. Un 4xx distinto de 429 significa que el ID no existe.
func (c *Client) GetByID(ctx context.Context, id string) (*entity.EmployeeEnvelope, error) {
	u := c.baseURL + "/" + url.PathEscape(id)
	status, body, err := c.do(ctx, opGet, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if err := classify(opGet, http.MethodGet, u, status, body); err != nil {
		return nil, err
	}
	if emptyBody(body) {
		return nil, fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}
	var resp singleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: deserializar empleado: %v", domain.ErrTransient, err)
	}
	env := toEnvelope(resp)
	if env == nil {
		return nil, fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}
	return env, nil
}

// Create implementa POST {base}.
func (c *Client) Create(ctx context.Context, in entity.CreateEmployeeInput) (*entity.EmployeeEnvelope, error) {
	status, body, err := c.do(ctx, opCreate, http.MethodPost, c.baseURL, toCreateRequest(in))
	if err != nil {
		return nil, err
	}
	if err := classify(opCreate, http.MethodPost, c.baseURL, status, body); err != nil {
		return nil, err
	}
	if emptyBody(body) {
		return nil, nil
	}
	var resp singleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: deserializar creación: %v", domain.ErrTransient, err)
	}
	return toEnvelope(resp), nil
}

// DeleteByName implementa DELETE {base} con cuerpo {"name": ...}.
func (c *Client) DeleteByName(ctx context.Context, name string) (*entity.DeleteOutcome, error) {
	status, body, err := c.do(ctx, opDelete, http.MethodDelete, c.baseURL, deleteRequest{Name: name})
	if err != nil {
		return nil, err
	}
	if err := classify(opDelete, http.MethodDelete, c.baseURL, status, body); err != nil {
		return nil, err
	}
	if emptyBody(body) {
		return nil, nil
	}
	var resp deleteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: deserializar borrado: %v", domain.ErrTransient, err)
	}
	return toDeleteOutcome(resp), nil
}

// do ejecuta la petición y devuelve status y cuerpo. Solo falla por errores de red,
// timeout o cancelación; la clasificación por status la hace classify.
func (c *Client) do(ctx context.Context, op, method, u string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("upstream %s: serializar request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("upstream %s: crear HTTP request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(op, "network_error").Inc()
		// Cancelación o deadline del llamador: se propaga tal cual.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, fmt.Errorf("upstream %s: %w", op, ctxErr)
		}
		return 0, nil, fmt.Errorf("%w: %s %s: %v", domain.ErrTransient, method, u, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequests.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: leer respuesta %s: %v", domain.ErrTransient, op, err)
	}
	return resp.StatusCode, body, nil
}

// classify traduce el status HTTP a la taxonomía de errores de dominio.
func classify(op, method, u string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	serr := &StatusError{Method: method, URL: u, StatusCode: status, Body: snippet(body, 300)}
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, serr)
	case status >= 400 && status < 500 && (op == opGet || op == opDelete):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, serr)
	case status >= 400 && status < 500 && op == opCreate:
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, serr)
	default:
		return fmt.Errorf("%w: %w", domain.ErrTransient, serr)
	}
}

// AsStatusError extrae el StatusError de la cadena de errores, si existe.
func AsStatusError(err error) (*StatusError, bool) {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}

func snippet(b []byte, limit int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
