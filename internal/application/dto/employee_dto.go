package dto

import "github.com/jhoicas/employee-api/internal/domain/entity"

// EmployeeDTO registro de empleado con los nombres de campo del upstream.
type EmployeeDTO struct {
	ID     string `json:"id"`
	Name   string `json:"employee_name"`
	Salary int    `json:"employee_salary"`
	Age    int    `json:"employee_age"`
	Title  string `json:"employee_title"`
	Email  string `json:"employee_email,omitempty"`
}

// EmployeeEnvelope salida {data, status} de un empleado.
type EmployeeEnvelope struct {
	Data   EmployeeDTO `json:"data"`
	Status string      `json:"status"`
}

// CreateEmployeeRequest entrada para crear un empleado.
type CreateEmployeeRequest struct {
	Name   string `json:"name" validate:"required"`
	Salary int    `json:"salary" validate:"required,gt=0"`
	Age    int    `json:"age" validate:"required,min=16,max=75"`
	Title  string `json:"title" validate:"required"`
}

// SalaryResponse salario máximo del listado.
type SalaryResponse struct {
	Data   int    `json:"data"`
	Status string `json:"status"`
}

// NamesResponse nombres del ranking de salarios.
type NamesResponse struct {
	Data   []string `json:"data"`
	Status string   `json:"status"`
}

// DeleteEmployeeResponse nombre del empleado eliminado y estado del upstream.
type DeleteEmployeeResponse struct {
	Data   string `json:"data"`
	Status string `json:"status"`
}

// ToEmployeeDTO mapea la entidad a su representación de salida.
func ToEmployeeDTO(e entity.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:     e.ID,
		Name:   e.Name,
		Salary: e.Salary,
		Age:    e.Age,
		Title:  e.Title,
		Email:  e.Email,
	}
}

// ToEmployeeEnvelope mapea un sobre de dominio a su salida.
func ToEmployeeEnvelope(env entity.EmployeeEnvelope) EmployeeEnvelope {
	return EmployeeEnvelope{Data: ToEmployeeDTO(env.Employee), Status: env.Status}
}

// ToEmployeeEnvelopes mapea una lista de sobres conservando el orden.
func ToEmployeeEnvelopes(envs []entity.EmployeeEnvelope) []EmployeeEnvelope {
	out := make([]EmployeeEnvelope, 0, len(envs))
	for _, env := range envs {
		out = append(out, ToEmployeeEnvelope(env))
	}
	return out
}

// ToCreateInput mapea la petición HTTP a la entrada de dominio.
func (r CreateEmployeeRequest) ToCreateInput() entity.CreateEmployeeInput {
	return entity.CreateEmployeeInput{
		Name:   r.Name,
		Salary: r.Salary,
		Age:    r.Age,
		Title:  r.Title,
	}
}
