package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"streetbazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errorText overrides the client-facing detail for forbidden and not-found outcomes.
type errorText struct {
	forbidden string
	notFound  string
}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// respondError maps a service outcome onto a status code. Unknown errors are
// logged and reported without detail.
func respondError(c *fiber.Ctx, logger *slog.Logger, err error, text errorText) error {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return detail(c, fiber.StatusBadRequest, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		return detail(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrInvalidToken):
		return detail(c, fiber.StatusUnauthorized, "Invalid token")
	case errors.Is(err, services.ErrForbidden):
		msg := text.forbidden
		if msg == "" {
			msg = "Forbidden"
		}
		return detail(c, fiber.StatusForbidden, msg)
	case errors.Is(err, services.ErrNotFound):
		msg := text.notFound
		if msg == "" {
			msg = "Not found"
		}
		return detail(c, fiber.StatusNotFound, msg)
	case errors.Is(err, services.ErrEmptyOrder):
		return detail(c, fiber.StatusBadRequest, "Order must contain at least one item")
	}

	logger.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return detail(c, fiber.StatusInternalServerError, "Internal server error")
}

// parseAndValidate decodes the JSON body into req and runs its validate tags.
// It writes the 400 response itself and returns ok=false when the request is rejected.
func parseAndValidate(c *fiber.Ctx, validate *validator.Validate, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
			"error":  err.Error(),
		})
	}

	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, detail(c, fiber.StatusBadRequest, "Validation failed")
		}
		errorMessages := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Validation failed",
			"errors": errorMessages,
		})
	}
	return true, nil
}
