package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/employee-api/internal/application/dto"
	"github.com/jhoicas/employee-api/internal/application/ports"
	"github.com/jhoicas/employee-api/internal/domain"
	"github.com/jhoicas/employee-api/pkg/logger"
)

var _ ports.EmployeeService = (*LoggedEmployeeService)(nil)

// LoggedEmployeeService decora un EmployeeService registrando la entrada y la salida
// de cada operación (nombre, argumentos, duración y error).
type LoggedEmployeeService struct {
	next ports.EmployeeService
	log  *logger.Logger
}

// NewLoggedEmployeeService envuelve next.
func NewLoggedEmployeeService(next ports.EmployeeService, log *logger.Logger) *LoggedEmployeeService {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggedEmployeeService{next: next, log: log}
}

func (s *LoggedEmployeeService) List(ctx context.Context) ([]dto.EmployeeEnvelope, error) {
	done := s.trace("List")
	out, err := s.next.List(ctx)
	done(err)
	return out, err
}

func (s *LoggedEmployeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeEnvelope, error) {
	done := s.trace("GetByID", "id", id)
	out, err := s.next.GetByID(ctx, id)
	done(err)
	return out, err
}

func (s *LoggedEmployeeService) SearchByName(ctx context.Context, term string) ([]dto.EmployeeEnvelope, error) {
	done := s.trace("SearchByName", "term", term)
	out, err := s.next.SearchByName(ctx, term)
	done(err)
	return out, err
}

func (s *LoggedEmployeeService) HighestSalary(ctx context.Context) (*dto.SalaryResponse, error) {
	done := s.trace("HighestSalary")
	out, err := s.next.HighestSalary(ctx)
	done(err)
	return out, err
}

func (s *LoggedEmployeeService) TopEarners(ctx context.Context, n int) (*dto.NamesResponse, error) {
	done := s.trace("TopEarners", "n", n)
	out, err := s.next.TopEarners(ctx, n)
	done(err)
	return out, err
}

func (s *LoggedEmployeeService) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeEnvelope, error) {
	done := s.trace("Create", "name", in.Name, "age", in.Age, "title", in.Title)
	out, err := s.next.Create(ctx, in)
	done(err)
	return out, err
}

func (s *LoggedEmployeeService) Delete(ctx context.Context, id string) (*dto.DeleteEmployeeResponse, error) {
	done := s.trace("Delete", "id", id)
	out, err := s.next.Delete(ctx, id)
	done(err)
	return out, err
}

// trace registra el inicio de op y devuelve la función que registra su final.
// args son pares clave/valor.
func (s *LoggedEmployeeService) trace(op string, args ...any) func(error) {
	start := time.Now()
	s.log.Info().Str("operation", op).Fields(args).Msg("ejecutando operación")
	return func(err error) {
		switch {
		case err == nil:
			s.log.Info().Str("operation", op).Dur("duration", time.Since(start)).Msg("operación finalizada")
		case isExpected(err):
			s.log.Warn().Str("operation", op).Dur("duration", time.Since(start)).Err(err).Msg("operación finalizada con error")
		default:
			s.log.Error().Str("operation", op).Dur("duration", time.Since(start)).Err(err).Msg("operación fallida")
		}
	}
}

// isExpected: errores de negocio que no indican un fallo del sistema.
func isExpected(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrEmptyDataset,
		domain.ErrNoMatch,
		domain.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
