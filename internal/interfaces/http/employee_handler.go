package http

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/employee-api/internal/application/dto"
	"github.com/jhoicas/employee-api/internal/application/ports"
)

// EmployeeHandler maneja las peticiones HTTP del recurso employees.
type EmployeeHandler struct {
	svc            ports.EmployeeService
	defaultTopN    int
	requestTimeout time.Duration
	retryAfter     time.Duration
}

// NewEmployeeHandler construye el handler inyectando el servicio.
func NewEmployeeHandler(svc ports.EmployeeService, defaultTopN int, requestTimeout, retryAfter time.Duration) *EmployeeHandler {
	if defaultTopN <= 0 {
		defaultTopN = 10
	}
	return &EmployeeHandler{
		svc:            svc,
		defaultTopN:    defaultTopN,
		requestTimeout: requestTimeout,
		retryAfter:     retryAfter,
	}
}

// ctx contexto de la petición, acotado por requestTimeout si está configurado.
func (h *EmployeeHandler) ctx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.requestTimeout > 0 {
		return context.WithTimeout(c.UserContext(), h.requestTimeout)
	}
	return context.WithCancel(c.UserContext())
}

// pathParam devuelve el parámetro de ruta decodificado (fiber lo entrega tal cual llega).
func pathParam(c *fiber.Ctx, name string) (string, error) {
	return url.PathUnescape(c.Params(name))
}

// invalidParam respuesta 400 para parámetros de ruta vacíos o mal codificados.
func invalidParam(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_PARAM", Message: name + " inválido",
	})
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Produce      json
// @Success      200  {array}   dto.EmployeeEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/v1/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.List(ctx)
	if err != nil {
		return writeError(c, err, h.retryAfter)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empleado por ID
// @Tags         employees
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil || strings.TrimSpace(id) == "" {
		return invalidParam(c, "id")
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err, h.retryAfter)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar empleados por nombre
// @Tags         employees
// @Produce      json
// @Param        searchString  path  string  true  "Fragmento del nombre"
// @Success      200  {array}   dto.EmployeeEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/employees/search/{searchString} [get]
func (h *EmployeeHandler) Search(c *fiber.Ctx) error {
	term, err := pathParam(c, "searchString")
	if err != nil {
		return invalidParam(c, "searchString")
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.SearchByName(ctx, term)
	if err != nil {
		return writeError(c, err, h.retryAfter)
	}
	return c.JSON(out)
}

// HighestSalary godoc
// @Summary      Salario más alto
// @Tags         employees
// @Produce      json
// @Success      200  {object}  dto.SalaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/employees/highest-salary [get]
func (h *EmployeeHandler) HighestSalary(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.HighestSalary(ctx)
	if err != nil {
		return writeError(c, err, h.retryAfter)
	}
	return c.JSON(out)
}

// TopEarners godoc
// @Summary      Nombres de los empleados mejor pagados
// @Tags         employees
// @Produce      json
// @Param        n    query  int  false  "Cantidad de nombres"  default(10)
// @Success      200  {object}  dto.NamesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/v1/employees/top-10-earning [get]
func (h *EmployeeHandler) TopEarners(c *fiber.Ctx) error {
	n := c.QueryInt("n", h.defaultTopN)
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.TopEarners(ctx, n)
	if err != nil {
		return writeError(c, err, h.retryAfter)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.Create(ctx, in)
	if err != nil {
		return writeError(c, err, h.retryAfter)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar empleado por ID
// @Tags         employees
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.DeleteEmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil || strings.TrimSpace(id) == "" {
		return invalidParam(c, "id")
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.Delete(ctx, id)
	if err != nil {
		return writeError(c, err, h.retryAfter)
	}
	return c.JSON(out)
}
