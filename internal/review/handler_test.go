package review

import (
	"net/http"
	"testing"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := testutil.NewApp()
	app.Get("/api/reviews", ListPublicHandler())
	app.Post("/api/reviews", SubmitHandler())

	admin := app.Group("/api/admin", testutil.Protected())
	admin.Patch("/reviews/:id/status", StatusHandler())
	return app
}

func publicIDs(t *testing.T, app *fiber.App) []string {
	t.Helper()
	resp := testutil.Do(t, app, http.MethodGet, "/api/reviews", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reviews []models.Review
	testutil.Decode(t, resp, &reviews)
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestModeration(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()
	_, token := testutil.CreateUser(t, models.RoleEditor)

	assert.ElementsMatch(t, []string{"review-1", "review-2"}, publicIDs(t, app))

	resp := testutil.Do(t, app, http.MethodPost, "/api/reviews", map[string]any{
		"author": "Grace", "rating": 5, "comment": "Beautiful pavlova", "status": "approved",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var submitted models.Review
	testutil.Decode(t, resp, &submitted)
	assert.Equal(t, models.ReviewPending, submitted.Status)
	assert.Equal(t, SourceWebsite, submitted.Source)
	assert.NotContains(t, publicIDs(t, app), submitted.ID)

	resp = testutil.Do(t, app, http.MethodPatch, "/api/admin/reviews/"+submitted.ID+"/status", map[string]any{"status": "approved"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, publicIDs(t, app), submitted.ID)
}

func TestSubmitHandlerValidation(t *testing.T) {
	testutil.SetupDB(t)
	app := newApp()

	testCases := map[string]struct {
		body  map[string]any
		field string
		rule  string
	}{
		"should require a rating":        {body: map[string]any{"author": "A", "comment": "ok"}, field: "rating", rule: "required"},
		"should cap the rating at five":   {body: map[string]any{"author": "A", "comment": "ok", "rating": 6}, field: "rating", rule: "max=5"},
		"should require a comment":        {body: map[string]any{"author": "A", "rating": 3}, field: "comment", rule: "required"},
		"should require a non blank name": {body: map[string]any{"author": "   ", "comment": "ok", "rating": 3}, field: "author", rule: "required"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			resp := testutil.Do(t, app, http.MethodPost, "/api/reviews", tc.body, "")
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body struct {
				Fields map[string]string `json:"fields"`
			}
			testutil.Decode(t, resp, &body)
			assert.Equal(t, tc.rule, body.Fields[tc.field])
		})
	}
}
