package supplier

import (
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var Suppliers = store.New[models.Supplier, *models.Supplier](store.Options[models.Supplier]{
	Kind:   "supplier",
	Label:  "Supplier",
	Search: []string{"name", "description", "location"},
	Order:  "name ASC",
	Title:  func(s *models.Supplier) string { return s.Name },
})

type Form struct {
	ID          string `json:"id" validate:"omitempty,max=64"`
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Location    string `json:"location" validate:"max=200"`
	Website     string `json:"website" validate:"omitempty,url,max=500"`
	Image       string `json:"image" validate:"max=500"`
	Featured    bool   `json:"featured"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func applyForm(f *Form, s *models.Supplier) {
	s.ID = f.ID
	s.Name = f.Name
	s.Category = f.Category
	s.Description = f.Description
	s.Location = f.Location
	s.Website = f.Website
	s.Image = f.Image
	s.Featured = f.Featured
	s.Status = f.Status
	if s.Status == "" {
		s.Status = StatusActive
	}
}

// GET /api/suppliers?category=&featured=
// Inactive suppliers are hidden from the site.
func ListPublicHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := web.ParseFilter(c, map[string]string{"category": "category", "featured": "featured"})
		f.Equals["status"] = StatusActive

		list, err := Suppliers.List(f)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// GET /api/admin/suppliers?search=&category=&status=&featured=
func ListHandler() fiber.Handler {
	return web.ListHandler(Suppliers, map[string]string{"category": "category", "status": "status", "featured": "featured"})
}

func GetHandler() fiber.Handler    { return web.GetHandler(Suppliers) }
func CreateHandler() fiber.Handler { return web.CreateHandler(Suppliers, applyForm) }
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Suppliers, applyForm) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Suppliers) }

// PATCH /api/admin/suppliers/:id/status
func StatusHandler() fiber.Handler {
	return web.StatusHandler(Suppliers, func(s *models.Supplier, v string) { s.Status = v }, StatusActive, StatusInactive)
}

// PATCH /api/admin/suppliers/:id/featured
func FeaturedHandler() fiber.Handler {
	return web.FlagHandler(Suppliers, "featured", func(s *models.Supplier, v bool) { s.Featured = v })
}
