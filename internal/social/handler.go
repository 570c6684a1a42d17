package social

import (
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
)

var Posts = store.New[models.SocialPost, *models.SocialPost](store.Options[models.SocialPost]{
	Kind:   "social_post",
	Label:  "Social post",
	Search: []string{"content"},
	Title: func(p *models.SocialPost) string {
		r := []rune(p.Content)
		if len(r) > 60 {
			return p.Platform + ": " + string(r[:60]) + "..."
		}
		return p.Platform + ": " + p.Content
	},
})

type Form struct {
	ID          string     `json:"id" validate:"omitempty,max=64"`
	Platform    string     `json:"platform" validate:"required,oneof=instagram facebook twitter tiktok"`
	Content     string     `json:"content" validate:"required,max=2200"`
	Image       string     `json:"image" validate:"max=500"`
	Link        string     `json:"link" validate:"omitempty,url,max=500"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Status      string     `json:"status" validate:"omitempty,oneof=draft scheduled published"`
	Likes       int        `json:"likes"`
	Comments    int        `json:"comments"`
}

func applyForm(f *Form, p *models.SocialPost) {
	p.ID = f.ID
	p.Platform = f.Platform
	p.Content = f.Content
	p.Image = f.Image
	p.Link = f.Link
	p.ScheduledAt = f.ScheduledAt
	p.Status = models.SocialPostStatus(f.Status)
	if p.Status == "" {
		p.Status = models.SocialDraft
	}
	p.Likes = f.Likes
	p.Comments = f.Comments
}

// GET /api/social-posts?platform=
func ListPublicHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := web.ParseFilter(c, map[string]string{"platform": "platform"})
		f.Equals["status"] = models.SocialPublished

		posts, err := Posts.List(f)
		if err != nil {
			return err
		}
		return c.JSON(posts)
	}
}

// GET /api/admin/social-posts?search=&platform=&status=
func ListHandler() fiber.Handler {
	return web.ListHandler(Posts, map[string]string{"platform": "platform", "status": "status"})
}

func GetHandler() fiber.Handler    { return web.GetHandler(Posts) }
func CreateHandler() fiber.Handler { return web.CreateHandler(Posts, applyForm) }
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Posts, applyForm) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Posts) }

// PATCH /api/admin/social-posts/:id/status
func StatusHandler() fiber.Handler {
	return web.StatusHandler(Posts, func(p *models.SocialPost, s string) {
		p.Status = models.SocialPostStatus(s)
	}, string(models.SocialDraft), string(models.SocialScheduled), string(models.SocialPublished))
}
