package member

import (
	"errors"
	"strings"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var Members = store.New[models.Member, *models.Member](store.Options[models.Member]{
	Kind:   "member",
	Label:  "Member",
	Search: []string{"name", "email", "phone"},
	Order:  "joined_at DESC",
	Title:  func(m *models.Member) string { return m.Name + " <" + m.Email + ">" },
})

type Form struct {
	ID          string     `json:"id" validate:"omitempty,max=64"`
	Name        string     `json:"name" validate:"required,max=100"`
	Email       string     `json:"email" validate:"required,email,max=150"`
	Phone       string     `json:"phone" validate:"max=50"`
	Tier        string     `json:"tier" validate:"omitempty,oneof=bronze silver gold platinum"`
	Points      int        `json:"points"`
	Birthday    string     `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Preferences string     `json:"preferences" validate:"max=500"`
	Status      string     `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinedAt    *time.Time `json:"joinedAt"`
}

func applyForm(f *Form, m *models.Member) {
	m.ID = f.ID
	m.Name = f.Name
	m.Email = strings.ToLower(f.Email)
	m.Phone = f.Phone
	m.Tier = models.MemberTier(f.Tier)
	if m.Tier == "" {
		m.Tier = models.TierBronze
	}
	m.Points = f.Points
	m.Birthday = f.Birthday
	m.Preferences = f.Preferences
	m.Status = models.MemberStatus(f.Status)
	if m.Status == "" {
		m.Status = models.MemberActive
	}
	switch {
	case f.JoinedAt != nil:
		m.JoinedAt = *f.JoinedAt
	case m.JoinedAt.IsZero():
		m.JoinedAt = time.Now()
	}
}

type SignupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=150"`
	Phone       string `json:"phone" validate:"max=50"`
	Birthday    string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Preferences string `json:"preferences" validate:"max=500"`
}

// POST /api/members
// New members start at bronze with no points. One membership per email.
func SignupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignupRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		email := strings.ToLower(body.Email)
		n, err := Members.Count(store.Filter{Equals: map[string]any{"email": email}})
		if err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, "This email is already a member")
		}

		m := &models.Member{
			Name:        body.Name,
			Email:       email,
			Phone:       body.Phone,
			Tier:        models.TierBronze,
			Birthday:    body.Birthday,
			Preferences: body.Preferences,
			Status:      models.MemberActive,
			JoinedAt:    time.Now(),
		}
		// The unique index settles two signups racing past the count.
		if err := Members.Create(models.WebsiteActor, m); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "This email is already a member")
			}
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// GET /api/admin/members?search=&tier=&status=
func ListHandler() fiber.Handler {
	return web.ListHandler(Members, map[string]string{"tier": "tier", "status": "status"})
}

func GetHandler() fiber.Handler    { return web.GetHandler(Members) }
func CreateHandler() fiber.Handler { return web.CreateHandler(Members, applyForm) }
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Members, applyForm) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Members) }

// PATCH /api/admin/members/:id/status
func StatusHandler() fiber.Handler {
	return web.StatusHandler(Members, func(m *models.Member, s string) {
		m.Status = models.MemberStatus(s)
	}, string(models.MemberActive), string(models.MemberInactive))
}
