package settings

import (
	"errors"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// Settings holds a single row with id models.SettingsID.
var Settings = store.New[models.Settings, *models.Settings](store.Options[models.Settings]{
	Kind:  "settings",
	Label: "Settings",
	Title: func(s *models.Settings) string { return s.RestaurantName },
})

// Current returns the saved settings, or the defaults before the first save.
func Current() (models.Settings, error) {
	s, err := Settings.Get(models.SettingsID)
	if err != nil {
		var notFound *store.NotFoundError
		if errors.As(err, &notFound) {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, err
	}
	return *s, nil
}

type Form struct {
	RestaurantName         string                `json:"restaurantName" validate:"required,max=200"`
	Tagline                string                `json:"tagline" validate:"max=300"`
	Address                string                `json:"address" validate:"max=300"`
	Phone                  string                `json:"phone" validate:"max=50"`
	Email                  string                `json:"email" validate:"omitempty,email,max=150"`
	OpeningHours           []models.OpeningHours `json:"openingHours" validate:"dive"`
	SocialLinks            models.SocialLinks    `json:"socialLinks"`
	ReservationSlotMinutes int                   `json:"reservationSlotMinutes" validate:"min=0"`
	MaxPartySize           int                   `json:"maxPartySize" validate:"required,min=1"`
	DeliveryEnabled        bool                  `json:"deliveryEnabled"`
	DeliveryFee            float64               `json:"deliveryFee" validate:"min=0"`
	NotifyOnReservation    bool                  `json:"notifyOnReservation"`
	NotifyOnOrder          bool                  `json:"notifyOnOrder"`
}

func (f *Form) apply(s *models.Settings) {
	s.RestaurantName = f.RestaurantName
	s.Tagline = f.Tagline
	s.Address = f.Address
	s.Phone = f.Phone
	s.Email = f.Email
	s.OpeningHours = f.OpeningHours
	s.SocialLinks = datatypes.NewJSONType(f.SocialLinks)
	s.ReservationSlotMinutes = f.ReservationSlotMinutes
	s.MaxPartySize = f.MaxPartySize
	s.DeliveryEnabled = f.DeliveryEnabled
	s.DeliveryFee = f.DeliveryFee
	s.NotifyOnReservation = f.NotifyOnReservation
	s.NotifyOnOrder = f.NotifyOnOrder
}

// GET /api/settings
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := Current()
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

// PUT /api/admin/settings
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form Form
		if err := web.Bind(c, &form); err != nil {
			return err
		}
		if form.OpeningHours == nil {
			form.OpeningHours = []models.OpeningHours{}
		}

		actor := auth.CurrentActor(c)

		updated, err := Settings.Update(actor, models.SettingsID, func(s *models.Settings) error {
			form.apply(s)
			return nil
		})
		var notFound *store.NotFoundError
		if errors.As(err, &notFound) {
			s := models.DefaultSettings()
			form.apply(&s)
			if err := Settings.Create(actor, &s); err != nil {
				return err
			}
			return c.JSON(s)
		}
		if err != nil {
			return err
		}
		return c.JSON(updated)
	}
}
