package snapshot

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/config"

	"github.com/gofiber/fiber/v2"
)

const pullTimeout = 30 * time.Second

// GET /api/admin/sync
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := Export()
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

func applyAndRespond(c *fiber.Ctx, s *Snapshot) error {
	counts, err := Apply(auth.CurrentActor(c), s)
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			return fiber.NewError(fiber.StatusBadRequest, "Snapshot contains no collections")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Snapshot applied",
		"counts":  counts,
	})
}

// POST /api/admin/sync
func ReplaceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := Decode(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid snapshot")
		}
		return applyAndRespond(c, s)
	}
}

// POST /api/admin/sync/pull
func PullHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.SyncSourceURL == "" {
			return fiber.NewError(fiber.StatusServiceUnavailable, "No sync source is configured")
		}

		s, err := fetch(cfg.SyncSourceURL, cfg.SyncSourceToken)
		if err != nil {
			slog.Warn("sync pull failed", "source", cfg.SyncSourceURL, "error", err)
			return fiber.NewError(fiber.StatusBadGateway, "Sync source could not be read")
		}
		return applyAndRespond(c, s)
	}
}

func fetch(url, token string) (*Snapshot, error) {
	agent := fiber.Get(url).Timeout(pullTimeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("source answered with status %d", code)
	}
	return Decode(body)
}
