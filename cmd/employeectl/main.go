// Comando employeectl: ejecuta las operaciones de la fachada de empleados desde la terminal,
// con la misma configuración (env / .env) que el servidor HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/employee-api/internal/application/ports"
	"github.com/jhoicas/employee-api/internal/bootstrap"
	"github.com/jhoicas/employee-api/pkg/config"
	"github.com/jhoicas/employee-api/pkg/logger"
)

var Version = "dev"

func main() {
	root := newRootCmd(func(verbose bool) (ports.EmployeeService, int, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, 0, fmt.Errorf("cargar configuración: %w", err)
		}
		level := "error"
		if verbose {
			level = "debug"
		}
		log := logger.NewWithWriter(os.Stderr, level)
		return bootstrap.EmployeeService(cfg, log), cfg.App.TopN, nil
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
