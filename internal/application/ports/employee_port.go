package ports

import (
	"context"

	"github.com/jhoicas/employee-api/internal/application/dto"
	"github.com/jhoicas/employee-api/internal/domain/entity"
)

// EmployeeAPI define el puerto de salida hacia el servicio upstream de empleados.
// Cada método hace exactamente una llamada HTTP y no reintenta: los reintentos
// se aplican en la capa de aplicación.
//
// Errores esperados (envueltos): domain.ErrRateLimited (429), domain.ErrNotFound
// (4xx en GetByID) y domain.ErrTransient (5xx, red o timeout).
type EmployeeAPI interface {
	// ListAll devuelve el listado completo. Un data nulo se entrega como listado vacío.
	ListAll(ctx context.Context) (*entity.EmployeeListing, error)

	GetByID(ctx context.Context, id string) (*entity.EmployeeEnvelope, error)

	// Create devuelve nil, nil si el upstream respondió sin cuerpo utilizable.
	Create(ctx context.Context, in entity.CreateEmployeeInput) (*entity.EmployeeEnvelope, error)

	// DeleteByName borra por nombre (el upstream no borra por ID).
	// Devuelve nil, nil si el upstream respondió sin cuerpo.
	DeleteByName(ctx context.Context, name string) (*entity.DeleteOutcome, error)
}

// EmployeeService es la superficie pública del orquestador que consumen los handlers HTTP y la CLI.
type EmployeeService interface {
	List(ctx context.Context) ([]dto.EmployeeEnvelope, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeEnvelope, error)
	SearchByName(ctx context.Context, term string) ([]dto.EmployeeEnvelope, error)
	HighestSalary(ctx context.Context) (*dto.SalaryResponse, error)
	TopEarners(ctx context.Context, n int) (*dto.NamesResponse, error)
	Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeEnvelope, error)
	Delete(ctx context.Context, id string) (*dto.DeleteEmployeeResponse, error)
}
