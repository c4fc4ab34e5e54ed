package employeeapi

import (
	"bytes"

	"github.com/jhoicas/employee-api/internal/domain/entity"
)

// ── Estructuras del protocolo del servicio de empleados ───────────────────────

type employeeData struct {
	ID     string `json:"id"`
	Name   string `json:"employee_name"`
	Salary int    `json:"employee_salary"`
	Age    int    `json:"employee_age"`
	Title  string `json:"employee_title"`
	Email  string `json:"employee_email"`
}

type listResponse struct {
	Data   []employeeData `json:"data"`
	Status string         `json:"status"`
}

type singleResponse struct {
	Data   *employeeData `json:"data"`
	Status string        `json:"status"`
}

type createRequest struct {
	Name   string `json:"name"`
	Salary int    `json:"salary"`
	Age    int    `json:"age"`
	Title  string `json:"title"`
}

type deleteRequest struct {
	Name string `json:"name"`
}

type deleteResponse struct {
	Data   *bool  `json:"data"`
	Status string `json:"status"`
}

// ── Mapeo wire → dominio ──────────────────────────────────────────────────────

func toEmployee(d employeeData) entity.Employee {
	return entity.Employee{
		ID:     d.ID,
		Name:   d.Name,
		Salary: d.Salary,
		Age:    d.Age,
		Title:  d.Title,
		Email:  d.Email,
	}
}

func toListing(r listResponse) *entity.EmployeeListing {
	employees := make([]entity.Employee, 0, len(r.Data))
	for _, d := range r.Data {
		employees = append(employees, toEmployee(d))
	}
	return &entity.EmployeeListing{Employees: employees, Status: r.Status}
}

// toEnvelope devuelve nil si el upstream no envió el registro.
func toEnvelope(r singleResponse) *entity.EmployeeEnvelope {
	if r.Data == nil {
		return nil
	}
	return &entity.EmployeeEnvelope{Employee: toEmployee(*r.Data), Status: r.Status}
}

func toCreateRequest(in entity.CreateEmployeeInput) createRequest {
	return createRequest{
		Name:   in.Name,
		Salary: in.Salary,
		Age:    in.Age,
		Title:  in.Title,
	}
}

// toDeleteOutcome: data ausente se interpreta como borrado aceptado; data=false no.
func toDeleteOutcome(r deleteResponse) *entity.DeleteOutcome {
	return &entity.DeleteOutcome{
		Deleted: r.Data == nil || *r.Data,
		Status:  r.Status,
	}
}

// emptyBody indica que el upstream respondió sin cuerpo utilizable.
func emptyBody(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
