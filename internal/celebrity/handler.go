package celebrity

import (
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
)

var Celebrities = store.New[models.Celebrity, *models.Celebrity](store.Options[models.Celebrity]{
	Kind:   "celebrity",
	Label:  "Celebrity",
	Search: []string{"name", "profession", "quote"},
	Order:  "visit_date DESC, name ASC",
	Title:  func(c *models.Celebrity) string { return c.Name },
})

type Form struct {
	ID         string `json:"id" validate:"omitempty,max=64"`
	Name       string `json:"name" validate:"required,max=100"`
	Profession string `json:"profession" validate:"required,max=100"`
	VisitDate  string `json:"visitDate" validate:"omitempty,datetime=2006-01-02"`
	Quote      string `json:"quote" validate:"max=1000"`
	Image      string `json:"image" validate:"required,max=500"`
	Featured   bool   `json:"featured"`
}

func applyForm(f *Form, c *models.Celebrity) {
	c.ID = f.ID
	c.Name = f.Name
	c.Profession = f.Profession
	c.VisitDate = f.VisitDate
	c.Quote = f.Quote
	c.Image = f.Image
	c.Featured = f.Featured
}

var filters = map[string]string{"featured": "featured", "profession": "profession"}

// GET /api/celebrities?featured=true
func ListPublicHandler() fiber.Handler { return web.ListHandler(Celebrities, filters) }

// GET /api/admin/celebrities
func ListHandler() fiber.Handler   { return web.ListHandler(Celebrities, filters) }
func GetHandler() fiber.Handler    { return web.GetHandler(Celebrities) }
func CreateHandler() fiber.Handler { return web.CreateHandler(Celebrities, applyForm) }
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Celebrities, applyForm) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Celebrities) }

// PATCH /api/admin/celebrities/:id/featured
func FeaturedHandler() fiber.Handler {
	return web.FlagHandler(Celebrities, "featured", func(c *models.Celebrity, v bool) { c.Featured = v })
}
