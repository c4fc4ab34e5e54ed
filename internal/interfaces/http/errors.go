package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/employee-api/internal/application/dto"
	"github.com/jhoicas/employee-api/internal/domain"
)

// errorMapping asocia un error de dominio con su status y código HTTP.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: ErrRetryExhausted antes que cualquier otro.
var errorMappings = []errorMapping{
	{domain.ErrRetryExhausted, fiber.StatusServiceUnavailable, "RETRY_EXHAUSTED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmptyDataset, fiber.StatusNotFound, "EMPTY_DATASET"},
	{domain.ErrNoMatch, fiber.StatusNotFound, "NO_MATCH"},
	{domain.ErrCreationFailed, fiber.StatusInternalServerError, "CREATION_FAILED"},
	{domain.ErrDeletionFailed, fiber.StatusInternalServerError, "DELETION_FAILED"},
	{domain.ErrRateLimited, fiber.StatusServiceUnavailable, "UPSTREAM_RATE_LIMITED"},
	{domain.ErrTransient, fiber.StatusBadGateway, "UPSTREAM_ERROR"},
	{context.DeadlineExceeded, fiber.StatusGatewayTimeout, "TIMEOUT"},
}

// writeError traduce err a una respuesta dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error, retryAfter time.Duration) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			status, code = m.status, m.code
			break
		}
	}
	if status == fiber.StatusServiceUnavailable && retryAfter > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(retryAfter.Seconds())))
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
