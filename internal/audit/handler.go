package audit

import (
	"errors"
	"strconv"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// GET /api/admin/audit-logs?entityType=menu_item&entityId=menu-1&userId=...&limit=100
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if v := c.Query("entityType"); v != "" {
			dbq = dbq.Where("entity_type = ?", v)
		}
		if v := c.Query("entityId"); v != "" {
			dbq = dbq.Where("entity_id = ?", v)
		}
		if v := c.Query("userId"); v != "" {
			dbq = dbq.Where("user_id = ?", v)
		}
		if v := c.Query("action"); v != "" {
			dbq = dbq.Where("action = ?", v)
		}

		limit := defaultListLimit
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
			}
			limit = min(n, maxListLimit)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit logs could not be listed")
		}

		return c.JSON(logs)
	}
}

// POST /api/admin/audit-logs/:id/undo
func UndoAuditLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		logID, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil || logID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid log id")
		}

		actor := auth.CurrentActor(c)

		if err := UndoLog(uint(logID), actor.UserID, actor.Name); err != nil {
			switch {
			case errors.Is(err, ErrLogNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			case errors.Is(err, ErrIDTaken):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			case errors.Is(err, ErrAlreadyUndone), errors.Is(err, ErrNotUndoable), errors.Is(err, ErrUnknownEntity):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			default:
				return err
			}
		}

		return c.JSON(fiber.Map{
			"message": "Change undone",
		})
	}
}
