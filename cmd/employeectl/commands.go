package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/employee-api/internal/application/dto"
	"github.com/jhoicas/employee-api/internal/application/ports"
)

// serviceFactory construye el servicio y devuelve el N por defecto del ranking.
type serviceFactory func(verbose bool) (ports.EmployeeService, int, error)

type cli struct {
	factory serviceFactory
	verbose bool
	svc     ports.EmployeeService
	topN    int
}

func newRootCmd(factory serviceFactory) *cobra.Command {
	c := &cli{factory: factory}
	root := &cobra.Command{
		Use:           "employeectl",
		Short:         "Consulta y administra empleados a través de la fachada",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			svc, topN, err := c.factory(c.verbose)
			if err != nil {
				return err
			}
			c.svc, c.topN = svc, topN
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "logs de depuración en stderr")

	root.AddCommand(c.listCmd())
	root.AddCommand(c.getCmd())
	root.AddCommand(c.searchCmd())
	root.AddCommand(c.highestCmd())
	root.AddCommand(c.topCmd())
	root.AddCommand(c.createCmd())
	root.AddCommand(c.deleteCmd())
	return root
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista todos los empleados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.svc.List(ctx(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Obtiene un empleado por ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.svc.GetByID(ctx(cmd), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [fragmento]",
		Short: "Busca empleados cuyo nombre contenga el fragmento (sin distinguir mayúsculas)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.svc.SearchByName(ctx(cmd), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) highestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "highest-salary",
		Short: "Muestra el salario más alto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.svc.HighestSalary(ctx(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}

func (c *cli) topCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Nombres de los empleados mejor pagados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				n = c.topN
			}
			out, err := c.svc.TopEarners(ctx(cmd), n)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().IntVarP(&n, "limit", "n", 10, "cantidad de nombres")
	return cmd
}

func (c *cli) createCmd() *cobra.Command {
	var in dto.CreateEmployeeRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un empleado",
		Long: `Crea un empleado en el servicio upstream.

Ejemplo:
  employeectl create --name "Jane Doe" --salary 5000 --age 30 --title Engineer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.svc.Create(ctx(cmd), in)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "nombre")
	cmd.Flags().IntVar(&in.Salary, "salary", 0, "salario (> 0)")
	cmd.Flags().IntVar(&in.Age, "age", 0, "edad (16-75)")
	cmd.Flags().StringVar(&in.Title, "title", "", "cargo")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Elimina un empleado por ID e imprime su nombre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.svc.Delete(ctx(cmd), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(out.Data))
			return err
		},
	}
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
