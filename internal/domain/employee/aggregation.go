// Package employee contiene los servicios de dominio que derivan vistas del listado
// de empleados: búsqueda por nombre, salario máximo y ranking por salario.
// Todas las funciones trabajan sobre una copia local del listado y nunca lo modifican.
package employee

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/employee-api/internal/domain"
	"github.com/jhoicas/employee-api/internal/domain/entity"
)

// DefaultTopN cantidad de nombres que devuelve el ranking si no se indica otra.
const DefaultTopN = 10

// Search devuelve los empleados cuyo nombre contiene term sin distinguir mayúsculas.
// Conserva el orden del listado upstream.
func Search(list []entity.Employee, term string) ([]entity.Employee, error) {
	if len(list) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	// cases.Caser no es seguro para uso concurrente: uno por llamada.
	fold := cases.Fold()
	needle := fold.String(term)
	var out []entity.Employee
	for _, e := range list {
		if strings.Contains(fold.String(e.Name), needle) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoMatch, term)
	}
	return out, nil
}

// HighestSalary devuelve el salario máximo del listado.
func HighestSalary(list []entity.Employee) (int, error) {
	if len(list) == 0 {
		return 0, domain.ErrEmptyDataset
	}
	highest := list[0].Salary
	for _, e := range list[1:] {
		if e.Salary > highest {
			highest = e.Salary
		}
	}
	return highest, nil
}

// TopEarners devuelve los nombres de los n empleados con mayor salario, de mayor a menor.
// Los empates conservan el orden original (orden estable). Un listado más corto que n
// devuelve menos nombres; no es un error.
func TopEarners(list []entity.Employee, n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if len(list) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	sorted := make([]entity.Employee, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Salary > sorted[j].Salary
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	names := make([]string, 0, n)
	for _, e := range sorted[:n] {
		names = append(names, e.Name)
	}
	return names, nil
}
