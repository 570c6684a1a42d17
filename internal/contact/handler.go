package contact

import (
	"strings"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
)

var Messages = store.New[models.ContactMessage, *models.ContactMessage](store.Options[models.ContactMessage]{
	Kind:   "contact_message",
	Label:  "Contact message",
	Search: []string{"name", "email", "subject", "message"},
	Title:  func(m *models.ContactMessage) string { return m.Name + ": " + m.Subject },
})

type SubmitRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=150"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// POST /api/contact
func SubmitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SubmitRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		m := &models.ContactMessage{
			Name:    body.Name,
			Email:   strings.ToLower(body.Email),
			Subject: body.Subject,
			Message: body.Message,
		}
		if err := Messages.Create(models.WebsiteActor, m); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      m.ID,
			"message": "Thanks, we will get back to you soon",
		})
	}
}

// GET /api/admin/contact-messages?search=&read=false
func ListHandler() fiber.Handler {
	return web.ListHandler(Messages, map[string]string{"read": "read"})
}

func GetHandler() fiber.Handler    { return web.GetHandler(Messages) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Messages) }

// PATCH /api/admin/contact-messages/:id/read {"read": true}
func ReadHandler() fiber.Handler {
	return web.FlagHandler(Messages, "read", func(m *models.ContactMessage, v bool) { m.Read = v })
}
