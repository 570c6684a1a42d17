package weather

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/menu"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

var Suggestions = store.New[models.WeatherSuggestion, *models.WeatherSuggestion](store.Options[models.WeatherSuggestion]{
	Kind:   "weather_suggestion",
	Label:  "Weather suggestion",
	Search: []string{"title", "message"},
	Order:  "priority DESC, created_at DESC",
	Title:  func(w *models.WeatherSuggestion) string { return w.Title },
})

const conditions = "sunny cloudy rainy stormy windy cold hot snowy"

type Form struct {
	ID          string   `json:"id" validate:"omitempty,max=64"`
	Condition   string   `json:"condition" validate:"required,oneof=sunny cloudy rainy stormy windy cold hot snowy"`
	MinTemp     *float64 `json:"minTemp"`
	MaxTemp     *float64 `json:"maxTemp"`
	Title       string   `json:"title" validate:"required,max=200"`
	Message     string   `json:"message" validate:"max=1000"`
	MenuItemIDs []string `json:"menuItemIds"`
	Active      bool     `json:"active"`
	Priority    int      `json:"priority"`
}

func applyForm(f *Form, w *models.WeatherSuggestion) {
	w.ID = f.ID
	w.Condition = models.WeatherCondition(strings.ToLower(f.Condition))
	w.MinTemp = f.MinTemp
	w.MaxTemp = f.MaxTemp
	w.Title = f.Title
	w.Message = f.Message
	w.MenuItemIDs = lo.Uniq(lo.Compact(f.MenuItemIDs))
	w.Active = f.Active
	w.Priority = f.Priority
}

// Match is a suggestion with its menu items loaded.
type Match struct {
	models.WeatherSuggestion
	MenuItems []models.MenuItem `json:"menuItems"`
}

// Current returns the active suggestions for the weather, highest priority first.
// Menu items that were deleted or are unavailable are left out.
func Current(condition models.WeatherCondition, temp float64) ([]Match, error) {
	active, err := Suggestions.List(store.Filter{Equals: map[string]any{"active": true}})
	if err != nil {
		return nil, err
	}

	matching := lo.Filter(active, func(w models.WeatherSuggestion, _ int) bool {
		return w.Matches(condition, temp)
	})
	sort.SliceStable(matching, func(i, j int) bool { return matching[i].Priority > matching[j].Priority })

	out := make([]Match, 0, len(matching))
	for _, w := range matching {
		items, err := menu.Items.GetMany(w.MenuItemIDs)
		if err != nil {
			return nil, err
		}
		out = append(out, Match{
			WeatherSuggestion: w,
			MenuItems:         lo.Filter(items, func(m models.MenuItem, _ int) bool { return m.Available }),
		})
	}
	return out, nil
}

// GET /api/weather-suggestions/current?condition=rainy&temperature=14.5
func CurrentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		condition := strings.ToLower(strings.TrimSpace(c.Query("condition")))
		if !lo.Contains(strings.Fields(conditions), condition) {
			return web.NewValidationError("condition", "oneof="+conditions)
		}

		temp, err := strconv.ParseFloat(c.Query("temperature"), 64)
		if err != nil || math.IsNaN(temp) || math.IsInf(temp, 0) {
			return web.NewValidationError("temperature", "number")
		}

		matches, err := Current(models.WeatherCondition(condition), temp)
		if err != nil {
			return err
		}
		return c.JSON(matches)
	}
}

// GET /api/admin/weather-suggestions?search=&condition=&active=
func ListHandler() fiber.Handler {
	return web.ListHandler(Suggestions, map[string]string{"condition": "condition", "active": "active"})
}

func GetHandler() fiber.Handler    { return web.GetHandler(Suggestions) }
func CreateHandler() fiber.Handler { return web.CreateHandler(Suggestions, applyForm) }
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Suggestions, applyForm) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Suggestions) }

// PATCH /api/admin/weather-suggestions/:id/active {"active": false}
func ActiveHandler() fiber.Handler {
	return web.FlagHandler(Suggestions, "active", func(w *models.WeatherSuggestion, v bool) { w.Active = v })
}
