package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/account-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/account-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// fail maps a service error kind to an HTTP response. Unknown errors are
// logged by the global error handler and hidden behind a 500.
func fail(c *fiber.Ctx, err error) error {
	var code int
	switch {
	case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
		code = fiber.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrIncorrectPassword):
		code = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.Is(err, services.ErrTooManyLoginAttempts),
		errors.Is(err, services.ErrTooManyEmailChanges),
		errors.Is(err, services.ErrTooManyResetAttempts):
		code = fiber.StatusTooManyRequests
	case errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrReadOnlyProperty),
		errors.Is(err, services.ErrEmailNotSent),
		errors.Is(err, services.ErrApp):
		code = fiber.StatusBadRequest
	default:
		return err
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}
