package employee

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/employee-api/internal/domain"
	"github.com/jhoicas/employee-api/internal/domain/entity"
)

// Límites de edad que impone el upstream al crear empleados.
const (
	MinAge = 16
	MaxAge = 75
)

// ValidateCreate valida la entrada antes de enviarla al upstream.
// Reúne todos los errores para que el llamador los vea de una sola vez.
func ValidateCreate(in entity.CreateEmployeeInput) error {
	var errs []error
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, errors.New("name es requerido"))
	}
	if in.Salary <= 0 {
		errs = append(errs, errors.New("salary debe ser mayor que 0"))
	}
	if in.Age < MinAge || in.Age > MaxAge {
		errs = append(errs, fmt.Errorf("age debe estar entre %d y %d", MinAge, MaxAge))
	}
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, errors.New("title es requerido"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}
