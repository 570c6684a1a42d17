package review

import (
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
)

const SourceWebsite = "website"

var Reviews = store.New[models.Review, *models.Review](store.Options[models.Review]{
	Kind:   "review",
	Label:  "Review",
	Search: []string{"author", "comment"},
	Order:  "date DESC, created_at DESC",
	Title:  func(r *models.Review) string { return r.Author },
})

type Form struct {
	ID       string `json:"id" validate:"omitempty,max=64"`
	Author   string `json:"author" validate:"required,max=100"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"required,max=2000"`
	Source   string `json:"source" validate:"omitempty,oneof=website google tripadvisor yelp"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status   string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Featured bool   `json:"featured"`
	Response string `json:"response" validate:"max=2000"`
}

func applyForm(f *Form, r *models.Review) {
	r.ID = f.ID
	r.Author = f.Author
	r.Rating = f.Rating
	r.Comment = f.Comment
	r.Source = f.Source
	if r.Source == "" {
		r.Source = SourceWebsite
	}
	r.Date = f.Date
	if r.Date == "" {
		r.Date = time.Now().Format("2006-01-02")
	}
	r.Status = models.ReviewStatus(f.Status)
	if r.Status == "" {
		r.Status = models.ReviewPending
	}
	r.Featured = f.Featured
	r.Response = f.Response
}

type SubmitRequest struct {
	Author  string `json:"author" validate:"required,max=100"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

// GET /api/reviews?featured=true
// Only approved reviews are public.
func ListPublicHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := web.ParseFilter(c, map[string]string{"featured": "featured", "source": "source"})
		f.Equals["status"] = models.ReviewApproved

		reviews, err := Reviews.List(f)
		if err != nil {
			return err
		}
		return c.JSON(reviews)
	}
}

// POST /api/reviews
// Submissions wait for moderation.
func SubmitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SubmitRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		r := &models.Review{
			Author:  body.Author,
			Rating:  body.Rating,
			Comment: body.Comment,
			Source:  SourceWebsite,
			Date:    time.Now().Format("2006-01-02"),
			Status:  models.ReviewPending,
		}
		if err := Reviews.Create(models.WebsiteActor, r); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// GET /api/admin/reviews?search=&status=&source=&featured=
func ListHandler() fiber.Handler {
	return web.ListHandler(Reviews, map[string]string{"status": "status", "source": "source", "featured": "featured"})
}

func GetHandler() fiber.Handler    { return web.GetHandler(Reviews) }
func CreateHandler() fiber.Handler { return web.CreateHandler(Reviews, applyForm) }
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Reviews, applyForm) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Reviews) }

// PATCH /api/admin/reviews/:id/status
func StatusHandler() fiber.Handler {
	return web.StatusHandler(Reviews, func(r *models.Review, s string) {
		r.Status = models.ReviewStatus(s)
	}, string(models.ReviewPending), string(models.ReviewApproved), string(models.ReviewRejected))
}

// PATCH /api/admin/reviews/:id/featured
func FeaturedHandler() fiber.Handler {
	return web.FlagHandler(Reviews, "featured", func(r *models.Review, v bool) { r.Featured = v })
}
