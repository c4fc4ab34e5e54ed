package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/employee-api/internal/application/dto"
	"github.com/jhoicas/employee-api/internal/application/usecase"
	"github.com/jhoicas/employee-api/internal/domain"
	"github.com/jhoicas/employee-api/internal/domain/entity"
	"github.com/jhoicas/employee-api/pkg/logger"
	"github.com/jhoicas/employee-api/pkg/retry"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del puerto EmployeeAPI
// ──────────────────────────────────────────────────────────────────────────────

type fakeAPI struct {
	listFn   func() (*entity.EmployeeListing, error)
	getFn    func(id string) (*entity.EmployeeEnvelope, error)
	createFn func(in entity.CreateEmployeeInput) (*entity.EmployeeEnvelope, error)
	deleteFn func(name string) (*entity.DeleteOutcome, error)

	listCalls, getCalls, createCalls int
	deletedNames                     []string
}

func (f *fakeAPI) ListAll(context.Context) (*entity.EmployeeListing, error) {
	f.listCalls++
	return f.listFn()
}

func (f *fakeAPI) GetByID(_ context.Context, id string) (*entity.EmployeeEnvelope, error) {
	f.getCalls++
	return f.getFn(id)
}

func (f *fakeAPI) Create(_ context.Context, in entity.CreateEmployeeInput) (*entity.EmployeeEnvelope, error) {
	f.createCalls++
	return f.createFn(in)
}

func (f *fakeAPI) DeleteByName(_ context.Context, name string) (*entity.DeleteOutcome, error) {
	f.deletedNames = append(f.deletedNames, name)
	return f.deleteFn(name)
}

// noWaitPolicy política por defecto que registra las esperas sin dormir.
func noWaitPolicy(delays *[]time.Duration) retry.Policy {
	p := retry.DefaultPolicy(nil)
	p.Wait = func(ctx context.Context, d time.Duration) error {
		if delays != nil {
			*delays = append(*delays, d)
		}
		return nil
	}
	return p
}

func rateLimited() error {
	return fmt.Errorf("%w: status=429", domain.ErrRateLimited)
}

func sampleListing() *entity.EmployeeListing {
	return &entity.EmployeeListing{
		Status: "success",
		Employees: []entity.Employee{
			{ID: "1", Name: "A", Salary: 100},
			{ID: "2", Name: "B", Salary: 400},
			{ID: "3", Name: "C", Salary: 400},
			{ID: "4", Name: "D", Salary: 200},
		},
	}
}

func newUseCase(api *fakeAPI, delays *[]time.Duration) *usecase.EmployeeUseCase {
	return usecase.NewEmployeeUseCase(api, noWaitPolicy(delays), logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y agregaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestList_CopiaEstadoEnCadaSobre(t *testing.T) {
	api := &fakeAPI{listFn: func() (*entity.EmployeeListing, error) { return sampleListing(), nil }}

	out, err := newUseCase(api, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 4)
	for _, env := range out {
		assert.Equal(t, "success", env.Status)
	}
	assert.Equal(t, "B", out[1].Data.Name)
}

func TestList_VacioONulo_EmptyDataset(t *testing.T) {
	for _, listing := range []*entity.EmployeeListing{{}, {Employees: []entity.Employee{}}} {
		api := &fakeAPI{listFn: func() (*entity.EmployeeListing, error) { return listing, nil }}
		_, err := newUseCase(api, nil).List(context.Background())
		assert.ErrorIs(t, err, domain.ErrEmptyDataset)
	}
}

func TestTopEarnersYHighestSalary(t *testing.T) {
	api := &fakeAPI{listFn: func() (*entity.EmployeeListing, error) { return sampleListing(), nil }}
	uc := newUseCase(api, nil)

	top, err := uc.TopEarners(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D"}, top.Data)

	highest, err := uc.HighestSalary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 400, highest.Data)
	assert.Equal(t, 2, api.listCalls, "cada operación vuelve a pedir el listado")
}

func TestTopEarners_NInvalidoNoLlamaAlUpstream(t *testing.T) {
	api := &fakeAPI{}
	_, err := newUseCase(api, nil).TopEarners(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, api.listCalls)
}

func TestSearchByName(t *testing.T) {
	api := &fakeAPI{listFn: func() (*entity.EmployeeListing, error) {
		return &entity.EmployeeListing{Status: "success", Employees: []entity.Employee{
			{ID: "1", Name: "Jane Doe"}, {ID: "2", Name: "John Smith"}, {ID: "3", Name: "Bob DOE"},
		}}, nil
	}}
	uc := newUseCase(api, nil)

	out, err := uc.SearchByName(context.Background(), "doe")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Jane Doe", out[0].Data.Name)
	assert.Equal(t, "Bob DOE", out[1].Data.Name)

	_, err = uc.SearchByName(context.Background(), "zzz")
	assert.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestSearchByName_ListadoVacio(t *testing.T) {
	api := &fakeAPI{listFn: func() (*entity.EmployeeListing, error) { return &entity.EmployeeListing{}, nil }}
	_, err := newUseCase(api, nil).SearchByName(context.Background(), "doe")
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos
// ──────────────────────────────────────────────────────────────────────────────

func TestList_DosLimitacionesLuegoExito(t *testing.T) {
	var delays []time.Duration
	api := &fakeAPI{}
	api.listFn = func() (*entity.EmployeeListing, error) {
		if api.listCalls <= 2 {
			return nil, rateLimited()
		}
		return sampleListing(), nil
	}

	out, err := newUseCase(api, &delays).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 4)
	assert.Equal(t, 3, api.listCalls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestGetByID_LimitacionSostenida_RetryExhausted(t *testing.T) {
	api := &fakeAPI{getFn: func(string) (*entity.EmployeeEnvelope, error) { return nil, rateLimited() }}

	_, err := newUseCase(api, nil).GetByID(context.Background(), "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRetryExhausted)
	assert.NotErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 3, api.getCalls)
}

func TestGetByID_NotFoundNoSeReintenta(t *testing.T) {
	api := &fakeAPI{getFn: func(id string) (*entity.EmployeeEnvelope, error) {
		return nil, fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}}

	_, err := newUseCase(api, nil).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, api.getCalls)
}

func TestHighestSalary_ErrorTransitorioSePropaga(t *testing.T) {
	api := &fakeAPI{listFn: func() (*entity.EmployeeListing, error) {
		return nil, fmt.Errorf("%w: status=500", domain.ErrTransient)
	}}

	_, err := newUseCase(api, nil).HighestSalary(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Equal(t, 1, api.listCalls)
}

func TestRetry_CancelacionDelContexto(t *testing.T) {
	api := &fakeAPI{listFn: func() (*entity.EmployeeListing, error) { return nil, rateLimited() }}
	p := retry.DefaultPolicy(nil)
	p.BaseDelay = time.Hour
	uc := usecase.NewEmployeeUseCase(api, p, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := uc.List(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, api.listCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ValidacionCortaAntesDelUpstream(t *testing.T) {
	api := &fakeAPI{}
	_, err := newUseCase(api, nil).Create(context.Background(), dto.CreateEmployeeRequest{Name: "A", Salary: 10, Age: 90, Title: "T"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, api.createCalls)
}

func TestCreate_SinCuerpo_CreationFailed(t *testing.T) {
	api := &fakeAPI{createFn: func(entity.CreateEmployeeInput) (*entity.EmployeeEnvelope, error) { return nil, nil }}
	_, err := newUseCase(api, nil).Create(context.Background(), dto.CreateEmployeeRequest{Name: "A", Salary: 10, Age: 30, Title: "T"})
	assert.ErrorIs(t, err, domain.ErrCreationFailed)
}

func TestCreate_Exito(t *testing.T) {
	api := &fakeAPI{createFn: func(in entity.CreateEmployeeInput) (*entity.EmployeeEnvelope, error) {
		return &entity.EmployeeEnvelope{
			Employee: entity.Employee{ID: "9", Name: in.Name, Salary: in.Salary, Age: in.Age, Title: in.Title},
			Status:   "success",
		}, nil
	}}
	out, err := newUseCase(api, nil).Create(context.Background(), dto.CreateEmployeeRequest{Name: "John Smith", Salary: 12000, Age: 35, Title: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "9", out.Data.ID)
	assert.Equal(t, "John Smith", out.Data.Name)
	assert.Equal(t, "success", out.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ResuelveNombreYBorraPorNombre(t *testing.T) {
	api := &fakeAPI{
		getFn: func(id string) (*entity.EmployeeEnvelope, error) {
			return &entity.EmployeeEnvelope{Employee: entity.Employee{ID: id, Name: "Jane Doe"}, Status: "success"}, nil
		},
		deleteFn: func(string) (*entity.DeleteOutcome, error) {
			return &entity.DeleteOutcome{Deleted: true, Status: "Successfully processed request."}, nil
		},
	}

	out, err := newUseCase(api, nil).Delete(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"Jane Doe"}, api.deletedNames)
	assert.Equal(t, "Jane Doe", out.Data)
	assert.Equal(t, "Successfully processed request.", out.Status)
}

func TestDelete_IDInexistenteNoEnviaBorrado(t *testing.T) {
	api := &fakeAPI{getFn: func(id string) (*entity.EmployeeEnvelope, error) {
		return nil, fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}}

	_, err := newUseCase(api, nil).Delete(context.Background(), "42")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, api.deletedNames)
}

func TestDelete_SinCuerpo_DeletionFailed(t *testing.T) {
	api := &fakeAPI{
		getFn: func(id string) (*entity.EmployeeEnvelope, error) {
			return &entity.EmployeeEnvelope{Employee: entity.Employee{ID: id, Name: "Jane Doe"}}, nil
		},
		deleteFn: func(string) (*entity.DeleteOutcome, error) { return nil, nil },
	}

	_, err := newUseCase(api, nil).Delete(context.Background(), "42")
	assert.ErrorIs(t, err, domain.ErrDeletionFailed)
}

func TestDelete_LimitacionEnElBorradoReintentaLaOperacionCompuesta(t *testing.T) {
	deletes := 0
	api := &fakeAPI{
		getFn: func(id string) (*entity.EmployeeEnvelope, error) {
			return &entity.EmployeeEnvelope{Employee: entity.Employee{ID: id, Name: "Jane Doe"}}, nil
		},
	}
	api.deleteFn = func(string) (*entity.DeleteOutcome, error) {
		deletes++
		if deletes == 1 {
			return nil, rateLimited()
		}
		return &entity.DeleteOutcome{Deleted: true, Status: "ok"}, nil
	}

	_, err := newUseCase(api, nil).Delete(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 2, api.getCalls, "el reintento vuelve a resolver el nombre")
	assert.Equal(t, []string{"Jane Doe", "Jane Doe"}, api.deletedNames)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decorador de logging
// ──────────────────────────────────────────────────────────────────────────────

func TestLoggedEmployeeService_RegistraEntradaYSalida(t *testing.T) {
	var buf bytes.Buffer
	api := &fakeAPI{getFn: func(id string) (*entity.EmployeeEnvelope, error) {
		return nil, fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
	}}
	svc := usecase.NewLoggedEmployeeService(newUseCase(api, nil), logger.NewWithWriter(&buf, "info"))

	_, err := svc.GetByID(context.Background(), "abc")
	require.True(t, errors.Is(err, domain.ErrNotFound))

	logs := buf.String()
	assert.Contains(t, logs, `"operation":"GetByID"`)
	assert.Contains(t, logs, `"id":"abc"`)
	assert.Contains(t, logs, "ejecutando operación")
	assert.Contains(t, logs, "operación finalizada con error")
}

func TestListing_RegistraDetalleEnNivelDebug(t *testing.T) {
	var buf bytes.Buffer
	api := &fakeAPI{listFn: func() (*entity.EmployeeListing, error) { return sampleListing(), nil }}
	uc := usecase.NewEmployeeUseCase(api, noWaitPolicy(nil), logger.NewWithWriter(&buf, "debug"))

	_, err := uc.HighestSalary(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"employees":4`)
	assert.Contains(t, buf.String(), "listado recibido del upstream")
}
