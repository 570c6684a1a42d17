package event

import (
	"fmt"
	"log/slog"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/audit"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var Events = store.New[models.Event, *models.Event](store.Options[models.Event]{
	Kind:   "event",
	Label:  "Event",
	Search: []string{"title", "description", "location"},
	Order:  "date ASC, time ASC",
	Title:  func(e *models.Event) string { return e.Title + " (" + e.Date + ")" },
})

var adminFilters = map[string]string{
	"status":   "status",
	"category": "category",
	"featured": "featured",
}

type Form struct {
	ID             string  `json:"id" validate:"omitempty,max=64"`
	Title          string  `json:"title" validate:"required,max=200"`
	Description    string  `json:"description" validate:"max=2000"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string  `json:"time" validate:"required,datetime=15:04"`
	EndTime        string  `json:"endTime" validate:"omitempty,datetime=15:04"`
	Price          float64 `json:"price"`
	MaxSpots       int     `json:"maxSpots"`
	AvailableSpots int     `json:"availableSpots"`
	Image          string  `json:"image" validate:"max=500"`
	Category       string  `json:"category" validate:"max=50"`
	Location       string  `json:"location" validate:"max=200"`
	Status         string  `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
	Featured       bool    `json:"featured"`
}

func applyForm(f *Form, e *models.Event) {
	e.ID = f.ID
	e.Title = f.Title
	e.Description = f.Description
	e.Date = f.Date
	e.Time = f.Time
	e.EndTime = f.EndTime
	e.Price = f.Price
	e.MaxSpots = f.MaxSpots
	e.AvailableSpots = f.AvailableSpots
	e.Image = f.Image
	e.Category = f.Category
	e.Location = f.Location
	e.Status = models.EventStatus(f.Status)
	if e.Status == "" {
		e.Status = models.EventUpcoming
	}
	e.Featured = f.Featured
}

// GET /api/events?category=
func ListPublicHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := web.ParseFilter(c, map[string]string{"category": "category", "featured": "featured"})
		f.Equals["status"] = models.EventUpcoming

		events, err := Events.List(f)
		if err != nil {
			return err
		}
		return c.JSON(events)
	}
}

type BookingRequest struct {
	Spots int `json:"spots" validate:"required,min=1"`
}

// POST /api/events/:id/bookings {"spots": 2}
// The decrement is a single conditional update so concurrent bookings cannot oversell.
func BookHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body BookingRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		before, err := Events.Get(id)
		if err != nil {
			return err
		}

		res := database.DB.Model(&models.Event{}).
			Where("id = ? AND status = ? AND available_spots >= ?", id, models.EventUpcoming, body.Spots).
			Update("available_spots", gorm.Expr("available_spots - ?", body.Spots))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if before.Status != models.EventUpcoming {
				return fiber.NewError(fiber.StatusConflict, "This event is not taking bookings")
			}
			return fiber.NewError(fiber.StatusConflict, "Not enough spots left for this event")
		}

		after, err := Events.Get(id)
		if err != nil {
			return err
		}

		actor := auth.CurrentActor(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID:      actor.UserID,
			UserName:    actor.Name,
			EntityType:  Events.Kind(),
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("%d spots booked: %s", body.Spots, after.Title),
			Before:      before,
			After:       after,
		}); err != nil {
			slog.Warn("audit log could not be written", "kind", Events.Kind(), "id", id, "error", err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"eventId":        id,
			"spots":          body.Spots,
			"availableSpots": after.AvailableSpots,
		})
	}
}

func GetHandler() fiber.Handler { return web.GetHandler(Events) }

// GET /api/admin/events?search=&status=&category=&featured=
func ListHandler() fiber.Handler   { return web.ListHandler(Events, adminFilters) }
func CreateHandler() fiber.Handler { return web.CreateHandler(Events, applyForm) }
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Events, applyForm) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Events) }

// PATCH /api/admin/events/:id/status
func StatusHandler() fiber.Handler {
	return web.StatusHandler(Events, func(e *models.Event, s string) {
		e.Status = models.EventStatus(s)
	}, string(models.EventUpcoming), string(models.EventOngoing), string(models.EventCompleted), string(models.EventCancelled))
}

// PATCH /api/admin/events/:id/featured
func FeaturedHandler() fiber.Handler {
	return web.FlagHandler(Events, "featured", func(e *models.Event, v bool) { e.Featured = v })
}
