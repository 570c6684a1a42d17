package home

import (
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/celebrity"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/event"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/menu"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/press"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/review"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/settings"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const upcomingEventsLimit = 3

// Page is everything the landing page renders.
type Page struct {
	Settings       models.Settings       `json:"settings"`
	FeaturedMenu   []models.MenuItem     `json:"featuredMenu"`
	UpcomingEvents []models.Event        `json:"upcomingEvents"`
	Reviews        []models.Review       `json:"reviews"`
	Press          []models.PressFeature `json:"press"`
	Celebrities    []models.Celebrity    `json:"celebrities"`
}

func where(equals map[string]any) store.Filter {
	return store.Filter{Equals: equals}
}

// Load reads the page sections in parallel.
func Load() (Page, error) {
	var (
		p Page
		g errgroup.Group
	)

	g.Go(func() (err error) { p.Settings, err = settings.Current(); return })
	g.Go(func() (err error) {
		p.FeaturedMenu, err = menu.Items.List(where(map[string]any{"featured": true, "available": true}))
		return
	})
	g.Go(func() error {
		events, err := event.Events.List(where(map[string]any{"status": models.EventUpcoming}))
		if err != nil {
			return err
		}
		p.UpcomingEvents = events[:min(len(events), upcomingEventsLimit)]
		return nil
	})
	g.Go(func() (err error) {
		p.Reviews, err = review.Reviews.List(where(map[string]any{"status": models.ReviewApproved, "featured": true}))
		return
	})
	g.Go(func() (err error) { p.Press, err = press.Features.List(where(map[string]any{"featured": true})); return })
	g.Go(func() (err error) { p.Celebrities, err = celebrity.Celebrities.List(where(map[string]any{"featured": true})); return })

	return p, g.Wait()
}

// GET /api/home
func Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := Load()
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}
