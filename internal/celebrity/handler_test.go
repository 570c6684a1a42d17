package celebrity

import (
	"net/http"
	"testing"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := testutil.NewApp()
	app.Get("/api/celebrities", ListPublicHandler())

	admin := app.Group("/api/admin", testutil.Protected())
	admin.Post("/celebrities", CreateHandler())
	admin.Patch("/celebrities/:id/featured", FeaturedHandler())
	return app
}

func TestCelebrities(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()
	_, token := testutil.CreateUser(t, models.RoleEditor)

	t.Run("should require an image", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/admin/celebrities", map[string]any{
			"name": "Kylie Minogue", "profession": "Singer",
		}, token)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Fields map[string]string `json:"fields"`
		}
		testutil.Decode(t, resp, &body)
		assert.Equal(t, map[string]string{"image": "required"}, body.Fields)
	})

	t.Run("should list featured guests only when asked", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/admin/celebrities", map[string]any{
			"name": "Kylie Minogue", "profession": "Singer", "image": "/media/kylie.jpg",
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		n, err := Celebrities.Count(store.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		resp = testutil.Do(t, app, http.MethodGet, "/api/celebrities?featured=true", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var featured []models.Celebrity
		testutil.Decode(t, resp, &featured)
		require.Len(t, featured, 1)
		assert.Equal(t, "celebrity-1", featured[0].ID)
	})
}
