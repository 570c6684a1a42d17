package member

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func newApp() *fiber.App {
	app := testutil.NewApp()
	app.Post("/api/members", SignupHandler())

	admin := app.Group("/api/admin", testutil.Protected())
	admin.Get("/members", ListHandler())
	admin.Put("/members/:id", UpdateHandler())
	admin.Patch("/members/:id/status", StatusHandler())
	return app
}

func TestSignupHandler(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()

	t.Run("should start a new member at bronze", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/members", map[string]any{
			"name": "Ella Jones", "email": "ella@example.com", "preferences": "vegetarian",
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var m models.Member
		testutil.Decode(t, resp, &m)
		assert.Equal(t, models.TierBronze, m.Tier)
		assert.Equal(t, models.MemberActive, m.Status)
		assert.Zero(t, m.Points)
		assert.False(t, m.JoinedAt.IsZero())
	})

	t.Run("should reject an email that is already a member", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/members", map[string]any{
			"name": "Olivia", "email": "OLIVIA@example.com",
		}, "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("should reject an invalid email", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/members", map[string]any{
			"name": "Nope", "email": "not-an-email",
		}, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Fields map[string]string `json:"fields"`
		}
		testutil.Decode(t, resp, &body)
		assert.Equal(t, "email", body.Fields["email"])
	})
}

func TestAdminMembers(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()
	_, token := testutil.CreateUser(t, models.RoleEditor)

	resp := testutil.Do(t, app, http.MethodPut, "/api/admin/members/member-2", map[string]any{
		"name": "Liam Walker", "email": "liam@example.com", "tier": "silver", "points": 600,
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m, err := Members.Get("member-2")
	require.NoError(t, err)
	assert.Equal(t, models.TierSilver, m.Tier)
	assert.Equal(t, 600, m.Points)
	assert.False(t, m.JoinedAt.IsZero())

	resp = testutil.Do(t, app, http.MethodGet, "/api/admin/members?tier=gold", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var gold []models.Member
	testutil.Decode(t, resp, &gold)
	require.Len(t, gold, 1)
	assert.Equal(t, "member-1", gold[0].ID)

	resp = testutil.Do(t, app, http.MethodPatch, "/api/admin/members/member-1/status", map[string]any{"status": "inactive"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	m, err = Members.Get("member-1")
	require.NoError(t, err)
	assert.Equal(t, models.MemberInactive, m.Status)
}

func TestMemberEmailIsUnique(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()
	_, token := testutil.CreateUser(t, models.RoleEditor)

	t.Run("store refuses a second member with the email", func(t *testing.T) {
		err := Members.Create(models.WebsiteActor, &models.Member{
			Name: "Olivia Again", Email: "olivia@example.com",
			Tier: models.TierBronze, Status: models.MemberActive, JoinedAt: time.Now(),
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("admin edit onto another member's email is a conflict", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPut, "/api/admin/members/member-2", map[string]any{
			"name": "Liam Walker", "email": "olivia@example.com",
		}, token)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		m, err := Members.Get("member-2")
		require.NoError(t, err)
		assert.Equal(t, "liam@example.com", m.Email)
	})

	t.Run("concurrent signups create one member", func(t *testing.T) {
		var created atomic.Int32
		var g errgroup.Group
		for range 8 {
			g.Go(func() error {
				resp := testutil.Do(t, app, http.MethodPost, "/api/members", map[string]any{
					"name": "Racer", "email": "racer@example.com",
				}, "")
				switch resp.StatusCode {
				case http.StatusCreated:
					created.Add(1)
				case http.StatusConflict:
				default:
					return fmt.Errorf("unexpected status %d", resp.StatusCode)
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
		assert.EqualValues(t, 1, created.Load())

		n, err := Members.Count(store.Filter{Equals: map[string]any{"email": "racer@example.com"}})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}
