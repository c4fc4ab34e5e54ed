package entity

// Employee representa un registro de empleado tal como lo entrega el servicio upstream.
// Es un valor inmutable: nunca se modifica localmente.
type Employee struct {
	ID     string
	Name   string
	Salary int
	Age    int
	Title  string
	Email  string
}

// EmployeeEnvelope empareja un Employee con la etiqueta de estado del upstream (ej. "success").
type EmployeeEnvelope struct {
	Employee Employee
	Status   string
}

// EmployeeListing es una instantánea del listado completo; vive solo durante una operación.
type EmployeeListing struct {
	Employees []Employee
	Status    string
}

// Empty indica si el upstream no devolvió registros (nulo o vacío se tratan igual).
func (l *EmployeeListing) Empty() bool {
	return l == nil || len(l.Employees) == 0
}

// Envelopes mapea cada registro del listado a su sobre, copiando el estado del listado.
func (l *EmployeeListing) Envelopes() []EmployeeEnvelope {
	if l == nil {
		return nil
	}
	out := make([]EmployeeEnvelope, 0, len(l.Employees))
	for _, e := range l.Employees {
		out = append(out, EmployeeEnvelope{Employee: e, Status: l.Status})
	}
	return out
}

// CreateEmployeeInput datos para crear un empleado en el upstream.
type CreateEmployeeInput struct {
	Name   string
	Salary int
	Age    int
	Title  string
}

// DeleteOutcome respuesta del upstream a un borrado por nombre.
type DeleteOutcome struct {
	Deleted bool
	Status  string
}
