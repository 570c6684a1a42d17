package reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/settings"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
)

var Reservations = store.New[models.Reservation, *models.Reservation](store.Options[models.Reservation]{
	Kind:   "reservation",
	Label:  "Reservation",
	Search: []string{"name", "email", "phone"},
	Order:  "date DESC, time DESC",
	Title: func(r *models.Reservation) string {
		return fmt.Sprintf("%s, %s %s (%d guests)", r.Name, r.Date, r.Time, r.Guests)
	},
})

var statuses = []string{
	string(models.ReservationPending),
	string(models.ReservationConfirmed),
	string(models.ReservationSeated),
	string(models.ReservationCompleted),
	string(models.ReservationCancelled),
}

type Form struct {
	ID              string `json:"id" validate:"omitempty,max=64"`
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=150"`
	Phone           string `json:"phone" validate:"required,max=50"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required,datetime=15:04"`
	Guests          int    `json:"guests" validate:"required,min=1"`
	TableNumber     string `json:"tableNumber" validate:"max=20"`
	Occasion        string `json:"occasion" validate:"max=100"`
	SpecialRequests string `json:"specialRequests" validate:"max=1000"`
	Status          string `json:"status" validate:"omitempty,oneof=pending confirmed seated completed cancelled"`
}

func applyForm(f *Form, r *models.Reservation) {
	r.ID = f.ID
	r.Name = f.Name
	r.Email = strings.ToLower(f.Email)
	r.Phone = f.Phone
	r.Date = f.Date
	r.Time = f.Time
	r.Guests = f.Guests
	r.TableNumber = f.TableNumber
	r.Occasion = f.Occasion
	r.SpecialRequests = f.SpecialRequests
	r.Status = models.ReservationStatus(f.Status)
	if r.Status == "" {
		r.Status = models.ReservationPending
	}
}

// POST /api/reservations
// Bookings from the site always start pending; the party size is capped by the settings.
func CreatePublicHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form Form
		if err := web.Bind(c, &form); err != nil {
			return err
		}

		cfg, err := settings.Current()
		if err != nil {
			return err
		}
		if cfg.MaxPartySize > 0 && form.Guests > cfg.MaxPartySize {
			return web.NewValidationError("guests", fmt.Sprintf("max=%d", cfg.MaxPartySize))
		}

		today := time.Now().Format("2006-01-02")
		if form.Date < today {
			return web.NewValidationError("date", "future")
		}

		form.ID = ""
		form.Status = string(models.ReservationPending)
		form.TableNumber = ""

		r := &models.Reservation{}
		applyForm(&form, r)
		if err := Reservations.Create(models.WebsiteActor, r); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// GET /api/admin/reservations?search=&status=&date=
func ListHandler() fiber.Handler {
	return web.ListHandler(Reservations, map[string]string{"status": "status", "date": "date"})
}

func GetHandler() fiber.Handler    { return web.GetHandler(Reservations) }
func CreateHandler() fiber.Handler { return web.CreateHandler(Reservations, applyForm) }
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Reservations, applyForm) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Reservations) }

// PATCH /api/admin/reservations/:id/status
func StatusHandler() fiber.Handler {
	return web.StatusHandler(Reservations, func(r *models.Reservation, s string) {
		r.Status = models.ReservationStatus(s)
	}, statuses...)
}

// GET /api/admin/reservations/export?status=&date=
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := Reservations.List(web.ParseFilter(c, map[string]string{"status": "status", "date": "date"}))
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(list))
		for _, r := range list {
			rows = append(rows, []any{
				r.Date, r.Time, r.Name, r.Email, r.Phone, r.Guests,
				r.TableNumber, r.Occasion, r.SpecialRequests, string(r.Status),
			})
		}

		header := []string{"Date", "Time", "Name", "Email", "Phone", "Guests", "Table", "Occasion", "Special Requests", "Status"}
		return web.SendWorkbook(c, "reservations.xlsx", "Reservations", header, rows)
	}
}
