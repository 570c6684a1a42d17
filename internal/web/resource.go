package web

import (
	"strings"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// The handlers below cover the CRUD screens of the CMS. F is the form a screen posts;
// apply copies a validated form onto a record. PUT replaces every form field.

// ListHandler serves GET with ?search= and the allowed equality filters.
func ListHandler[T any, P store.Record[T]](col *store.Collection[T, P], allowed map[string]string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := col.List(ParseFilter(c, allowed))
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

func GetHandler[T any, P store.Record[T]](col *store.Collection[T, P]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := col.Get(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}

func CreateHandler[T any, P store.Record[T], F any](col *store.Collection[T, P], apply func(*F, *T)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form F
		if err := Bind(c, &form); err != nil {
			return err
		}

		rec := P(new(T))
		apply(&form, (*T)(rec))

		if err := col.Create(auth.CurrentActor(c), rec); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

func UpdateHandler[T any, P store.Record[T], F any](col *store.Collection[T, P], apply func(*F, *T)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form F
		if err := Bind(c, &form); err != nil {
			return err
		}

		rec, err := col.Update(auth.CurrentActor(c), c.Params("id"), func(rec P) error {
			apply(&form, (*T)(rec))
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}

func DeleteHandler[T any, P store.Record[T]](col *store.Collection[T, P]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := col.Delete(auth.CurrentActor(c), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// FlagHandler toggles one boolean field, e.g. PATCH /:id/availability {"available": false}.
func FlagHandler[T any, P store.Record[T]](col *store.Collection[T, P], key string, set func(*T, bool)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body map[string]any
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		value, ok := body[key].(bool)
		if !ok {
			return NewValidationError(key, "boolean")
		}

		rec, err := col.Update(auth.CurrentActor(c), c.Params("id"), func(rec P) error {
			set((*T)(rec), value)
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}

// StatusHandler serves PATCH /:id/status {"status": "..."}; the value must be one of allowed.
func StatusHandler[T any, P store.Record[T]](col *store.Collection[T, P], set func(*T, string), allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		status := strings.ToLower(strings.TrimSpace(body.Status))
		if !lo.Contains(allowed, status) {
			return NewValidationError("status", "oneof="+strings.Join(allowed, " "))
		}

		rec, err := col.Update(auth.CurrentActor(c), c.Params("id"), func(rec P) error {
			set((*T)(rec), status)
			return nil
		})
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}
