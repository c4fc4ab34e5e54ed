package domain

import (
	"errors"

	"github.com/jhoicas/employee-api/pkg/retry"
)

// Errores de dominio. Los adaptadores los envuelven con fmt.Errorf("...: %w", err)
// y los handlers los clasifican con errors.Is.
var (
	ErrNotFound       = errors.New("empleado no encontrado")
	ErrEmptyDataset   = errors.New("no hay datos de empleados")
	ErrNoMatch        = errors.New("ningún empleado coincide con la búsqueda")
	ErrCreationFailed = errors.New("la creación del empleado falló")
	ErrDeletionFailed = errors.New("la eliminación del empleado falló")
	ErrRateLimited    = errors.New("el servicio de empleados limitó la petición")
	ErrTransient      = errors.New("error transitorio del servicio de empleados")
	ErrInvalidInput   = errors.New("entrada inválida")

	// ErrRetryExhausted es terminal: no envuelve ErrRateLimited para que el llamador
	// distinga "sigue limitado" de "se agotaron los reintentos".
	ErrRetryExhausted = retry.ErrExhausted
)
