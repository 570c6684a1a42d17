package web

import (
	"errors"
	"log/slog"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/logger"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ValidationError carries per-field messages keyed by the JSON field name.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{
		Message: "Validation failed",
		Fields:  map[string]string{field: rule},
	}
}

// ErrorHandler renders every error returned by a handler as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Packages below web (auth) return the validator's own errors.
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		err = FromValidator(fieldErrs)
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  vErr.Message,
			"fields": vErr.Fields,
		})
	}

	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound.Error()})
	}

	var duplicate *store.DuplicateError
	if errors.As(err, &duplicate) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": duplicate.Error()})
	}

	// A unique index lost a race that the handler's own check could not see.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A record with the same unique value already exists"})
	}

	var fErr *fiber.Error
	if errors.As(err, &fErr) {
		return c.Status(fErr.Code).JSON(fiber.Map{
			"error": fErr.Message,
		})
	}

	slog.Error("unexpected error", "request_id", logger.RequestID(c), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "unexpected server error",
	})
}
