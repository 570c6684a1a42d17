package menu

import (
	"strings"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// Items is the menu collection. Orders, carts and weather suggestions refer to it by id.
var Items = store.New[models.MenuItem, *models.MenuItem](store.Options[models.MenuItem]{
	Kind:   "menu_item",
	Label:  "Menu item",
	Search: []string{"name", "description", "category"},
	Order:  "category ASC, name ASC",
	Title:  func(m *models.MenuItem) string { return m.Name },
})

var adminFilters = map[string]string{
	"category":  "category",
	"available": "available",
	"featured":  "featured",
}

type ItemForm struct {
	ID          string   `json:"id" validate:"omitempty,max=64"`
	Name        string   `json:"name" validate:"required,max=150"`
	Description string   `json:"description" validate:"max=1000"`
	Category    string   `json:"category" validate:"required,max=50"`
	Price       *float64 `json:"price" validate:"required"`
	Image       string   `json:"image" validate:"max=500"`
	Available   bool     `json:"available"`
	Featured    bool     `json:"featured"`
	DietaryTags []string `json:"dietaryTags"`
	SpiceLevel  int      `json:"spiceLevel"`
	Calories    int      `json:"calories"`
}

func applyForm(f *ItemForm, m *models.MenuItem) {
	m.ID = f.ID
	m.Name = f.Name
	m.Description = f.Description
	m.Category = f.Category
	m.Price = *f.Price
	m.Image = f.Image
	m.Available = f.Available
	m.Featured = f.Featured
	m.DietaryTags = normalizeTags(f.DietaryTags)
	m.SpiceLevel = f.SpiceLevel
	m.Calories = f.Calories
}

// normalizeTags trims, drops blanks and removes duplicates, keeping the first spelling.
func normalizeTags(tags []string) []string {
	trimmed := lo.Compact(lo.Map(tags, func(t string, _ int) string { return strings.TrimSpace(t) }))
	return lo.UniqBy(trimmed, strings.ToLower)
}

// GET /api/menu?search=&category=&dietary=vegan
// Only available items are listed on the site.
func ListPublicHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := web.ParseFilter(c, map[string]string{"category": "category"})
		f.Equals["available"] = true

		items, err := Items.List(f)
		if err != nil {
			return err
		}

		if tag := strings.TrimSpace(c.Query("dietary")); tag != "" && tag != "all" {
			items = lo.Filter(items, func(m models.MenuItem, _ int) bool {
				return m.HasDietaryTag(tag)
			})
		}

		return c.JSON(items)
	}
}

// GET /api/menu/categories
func CategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := Items.List(store.Filter{Equals: map[string]any{"available": true}})
		if err != nil {
			return err
		}
		return c.JSON(lo.Uniq(lo.Map(items, func(m models.MenuItem, _ int) string { return m.Category })))
	}
}

func GetHandler() fiber.Handler { return web.GetHandler(Items) }

// GET /api/admin/menu-items
func ListHandler() fiber.Handler { return web.ListHandler(Items, adminFilters) }

// POST /api/admin/menu-items
func CreateHandler() fiber.Handler { return web.CreateHandler(Items, applyForm) }

// PUT /api/admin/menu-items/:id
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Items, applyForm) }

// DELETE /api/admin/menu-items/:id
// Carts, orders and weather suggestions keep the id; readers skip it from now on.
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Items) }

// PATCH /api/admin/menu-items/:id/availability {"available": false}
func AvailabilityHandler() fiber.Handler {
	return web.FlagHandler(Items, "available", func(m *models.MenuItem, v bool) { m.Available = v })
}

// PATCH /api/admin/menu-items/:id/featured {"featured": true}
func FeaturedHandler() fiber.Handler {
	return web.FlagHandler(Items, "featured", func(m *models.MenuItem, v bool) { m.Featured = v })
}
