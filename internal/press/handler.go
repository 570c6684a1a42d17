package press

import (
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
)

var Awards = store.New[models.Award, *models.Award](store.Options[models.Award]{
	Kind:   "award",
	Label:  "Award",
	Search: []string{"title", "organization", "category"},
	Order:  "year DESC, title ASC",
	Title:  func(a *models.Award) string { return a.Title },
})

var Features = store.New[models.PressFeature, *models.PressFeature](store.Options[models.PressFeature]{
	Kind:   "press_feature",
	Label:  "Press feature",
	Search: []string{"publication", "title", "excerpt"},
	Order:  "date DESC",
	Title:  func(p *models.PressFeature) string { return p.Publication + ": " + p.Title },
})

type AwardForm struct {
	ID           string `json:"id" validate:"omitempty,max=64"`
	Title        string `json:"title" validate:"required,max=200"`
	Organization string `json:"organization" validate:"required,max=200"`
	Year         int    `json:"year" validate:"required,min=1900,max=2100"`
	Category     string `json:"category" validate:"max=100"`
	Description  string `json:"description" validate:"max=1000"`
	Image        string `json:"image" validate:"max=500"`
}

func applyAward(f *AwardForm, a *models.Award) {
	a.ID = f.ID
	a.Title = f.Title
	a.Organization = f.Organization
	a.Year = f.Year
	a.Category = f.Category
	a.Description = f.Description
	a.Image = f.Image
}

type FeatureForm struct {
	ID          string `json:"id" validate:"omitempty,max=64"`
	Publication string `json:"publication" validate:"required,max=200"`
	Title       string `json:"title" validate:"required,max=300"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Excerpt     string `json:"excerpt" validate:"max=1000"`
	Content     string `json:"content"`
	URL         string `json:"url" validate:"omitempty,url,max=500"`
	Image       string `json:"image" validate:"max=500"`
	Featured    bool   `json:"featured"`
}

func applyFeature(f *FeatureForm, p *models.PressFeature) {
	p.ID = f.ID
	p.Publication = f.Publication
	p.Title = f.Title
	p.Date = f.Date
	p.Excerpt = f.Excerpt
	p.Content = f.Content
	p.URL = f.URL
	p.Image = f.Image
	p.Featured = f.Featured
}

var (
	awardFilters   = map[string]string{"year": "year", "category": "category"}
	featureFilters = map[string]string{"featured": "featured", "publication": "publication"}
)

// GET /api/awards, GET /api/admin/awards
func ListAwardsHandler() fiber.Handler  { return web.ListHandler(Awards, awardFilters) }
func GetAwardHandler() fiber.Handler    { return web.GetHandler(Awards) }
func CreateAwardHandler() fiber.Handler { return web.CreateHandler(Awards, applyAward) }
func UpdateAwardHandler() fiber.Handler { return web.UpdateHandler(Awards, applyAward) }
func DeleteAwardHandler() fiber.Handler { return web.DeleteHandler(Awards) }

// GET /api/press, GET /api/press/:id and their CMS counterparts
func ListFeaturesHandler() fiber.Handler  { return web.ListHandler(Features, featureFilters) }
func GetFeatureHandler() fiber.Handler    { return web.GetHandler(Features) }
func CreateFeatureHandler() fiber.Handler { return web.CreateHandler(Features, applyFeature) }
func UpdateFeatureHandler() fiber.Handler { return web.UpdateHandler(Features, applyFeature) }
func DeleteFeatureHandler() fiber.Handler { return web.DeleteHandler(Features) }

// PATCH /api/admin/press/:id/featured
func FeaturedHandler() fiber.Handler {
	return web.FlagHandler(Features, "featured", func(p *models.PressFeature, v bool) { p.Featured = v })
}
