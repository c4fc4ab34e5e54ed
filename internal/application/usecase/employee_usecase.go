package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/employee-api/internal/application/dto"
	"github.com/jhoicas/employee-api/internal/application/ports"
	"github.com/jhoicas/employee-api/internal/domain"
	"github.com/jhoicas/employee-api/internal/domain/employee"
	"github.com/jhoicas/employee-api/internal/domain/entity"
	"github.com/jhoicas/employee-api/internal/infrastructure/metrics"
	"github.com/jhoicas/employee-api/pkg/logger"
	"github.com/jhoicas/employee-api/pkg/retry"
)

var _ ports.EmployeeService = (*EmployeeUseCase)(nil)

// EmployeeUseCase orquesta las operaciones sobre el servicio upstream de empleados:
// cada operación que toca el upstream va envuelta en la política de reintentos ante 429,
// incluidas las compuestas (Delete resuelve el nombre con GetByID, que reintenta por su cuenta).
// No guarda estado entre operaciones: cada una vuelve a pedir el listado.
type EmployeeUseCase struct {
	api    ports.EmployeeAPI
	policy retry.Policy
	log    *logger.Logger
}

// NewEmployeeUseCase construye el caso de uso. Si la política no define predicado,
// se reintenta solo domain.ErrRateLimited.
func NewEmployeeUseCase(api ports.EmployeeAPI, policy retry.Policy, log *logger.Logger) *EmployeeUseCase {
	if policy.Retryable == nil {
		policy.Retryable = IsRateLimited
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EmployeeUseCase{api: api, policy: policy, log: log}
}

// IsRateLimited predicado de reintento: solo la limitación del upstream es recuperable.
func IsRateLimited(err error) bool {
	return errors.Is(err, domain.ErrRateLimited)
}

// List devuelve todos los empleados con el estado del upstream.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeEnvelope, error) {
	listing, err := uc.listing(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToEmployeeEnvelopes(listing.Envelopes()), nil
}

// GetByID obtiene un empleado por ID.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeEnvelope, error) {
	env, err := uc.envelope(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToEmployeeEnvelope(*env)
	return &out, nil
}

// SearchByName filtra el listado por nombre (sin distinguir mayúsculas).
func (uc *EmployeeUseCase) SearchByName(ctx context.Context, term string) ([]dto.EmployeeEnvelope, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: el texto de búsqueda es requerido", domain.ErrInvalidInput)
	}
	return withRetry(ctx, uc, "search", func(ctx context.Context) ([]dto.EmployeeEnvelope, error) {
		listing, err := uc.listing(ctx)
		if err != nil {
			return nil, err
		}
		matches, err := employee.Search(listing.Employees, term)
		if err != nil {
			return nil, err
		}
		sub := entity.EmployeeListing{Employees: matches, Status: listing.Status}
		return dto.ToEmployeeEnvelopes(sub.Envelopes()), nil
	})
}

// HighestSalary devuelve el salario máximo.
func (uc *EmployeeUseCase) HighestSalary(ctx context.Context) (*dto.SalaryResponse, error) {
	return withRetry(ctx, uc, "highest_salary", func(ctx context.Context) (*dto.SalaryResponse, error) {
		listing, err := uc.listing(ctx)
		if err != nil {
			return nil, err
		}
		highest, err := employee.HighestSalary(listing.Employees)
		if err != nil {
			return nil, err
		}
		return &dto.SalaryResponse{Data: highest, Status: listing.Status}, nil
	})
}

// TopEarners devuelve los nombres de los n empleados mejor pagados.
func (uc *EmployeeUseCase) TopEarners(ctx context.Context, n int) (*dto.NamesResponse, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n debe ser mayor que 0", domain.ErrInvalidInput)
	}
	return withRetry(ctx, uc, "top_earners", func(ctx context.Context) (*dto.NamesResponse, error) {
		listing, err := uc.listing(ctx)
		if err != nil {
			return nil, err
		}
		names, err := employee.TopEarners(listing.Employees, n)
		if err != nil {
			return nil, err
		}
		return &dto.NamesResponse{Data: names, Status: listing.Status}, nil
	})
}

// Create valida la entrada y crea el empleado. La validación corta antes de cualquier llamada.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeEnvelope, error) {
	input := in.ToCreateInput()
	if err := employee.ValidateCreate(input); err != nil {
		return nil, err
	}
	env, err := withRetry(ctx, uc, "create", func(ctx context.Context) (*entity.EmployeeEnvelope, error) {
		return uc.api.Create(ctx, input)
	})
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, fmt.Errorf("%w: el upstream no devolvió el empleado creado", domain.ErrCreationFailed)
	}
	out := dto.ToEmployeeEnvelope(*env)
	return &out, nil
}

// Delete elimina por ID en dos pasos: resuelve el nombre con GetByID y borra por nombre.
// Si el ID no existe no se envía ningún borrado.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) (*dto.DeleteEmployeeResponse, error) {
	return withRetry(ctx, uc, "delete", func(ctx context.Context) (*dto.DeleteEmployeeResponse, error) {
		env, err := uc.envelope(ctx, id)
		if err != nil {
			return nil, err
		}
		name := env.Employee.Name
		outcome, err := uc.api.DeleteByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if outcome == nil || !outcome.Deleted {
			return nil, fmt.Errorf("%w: id %s", domain.ErrDeletionFailed, id)
		}
		return &dto.DeleteEmployeeResponse{Data: name, Status: outcome.Status}, nil
	})
}

// listing pide el listado completo con reintentos; vacío o nulo es ErrEmptyDataset.
func (uc *EmployeeUseCase) listing(ctx context.Context) (*entity.EmployeeListing, error) {
	listing, err := withRetry(ctx, uc, "list", uc.api.ListAll)
	if err != nil {
		return nil, err
	}
	if listing.Empty() {
		return nil, domain.ErrEmptyDataset
	}
	uc.log.Debug().
		Int("employees", len(listing.Employees)).
		Str("status", listing.Status).
		Msg("listado recibido del upstream")
	return listing, nil
}

func (uc *EmployeeUseCase) envelope(ctx context.Context, id string) (*entity.EmployeeEnvelope, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id es requerido", domain.ErrInvalidInput)
	}
	return withRetry(ctx, uc, "get_by_id", func(ctx context.Context) (*entity.EmployeeEnvelope, error) {
		return uc.api.GetByID(ctx, id)
	})
}

// withRetry aplica la política del caso de uso registrando reintentos y agotamiento.
func withRetry[T any](ctx context.Context, uc *EmployeeUseCase, op string, fn func(context.Context) (T, error)) (T, error) {
	p := uc.policy
	p.OnRetry = func(attempt int, delay time.Duration, err error) {
		metrics.Retries.WithLabelValues(op).Inc()
		uc.log.Warn().
			Str("operation", op).
			Int("attempt", attempt).
			Dur("delay", delay).
			Err(err).
			Msg("upstream limitó la petición, reintentando")
	}
	// nested: el agotamiento vino de una operación interna que ya lo registró.
	var nested bool
	out, err := retry.Do(ctx, p, func(ctx context.Context) (T, error) {
		out, err := fn(ctx)
		nested = errors.Is(err, retry.ErrExhausted)
		return out, err
	})
	if errors.Is(err, retry.ErrExhausted) && !nested {
		metrics.RetryExhausted.WithLabelValues(op).Inc()
		uc.log.Error().Str("operation", op).Err(err).Msg("reintentos agotados, intente más tarde")
	}
	return out, err
}
