package home

import (
	"net/http"
	"testing"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/testutil"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	db := testutil.SetupSeededDB(t)
	app := testutil.NewApp()
	app.Get("/api/home", Handler())

	t.Run("should collect the featured content", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodGet, "/api/home", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page Page
		testutil.Decode(t, resp, &page)

		assert.Equal(t, "Melbourne Bistro", page.Settings.RestaurantName)
		assert.ElementsMatch(t, []string{"menu-1", "menu-2", "menu-7"}, lo.Map(page.FeaturedMenu, func(m models.MenuItem, _ int) string { return m.ID }))
		require.Len(t, page.UpcomingEvents, 2)
		assert.Equal(t, "event-1", page.UpcomingEvents[0].ID)
		require.Len(t, page.Reviews, 1)
		assert.Equal(t, "review-1", page.Reviews[0].ID)
		assert.Len(t, page.Press, 1)
		assert.Len(t, page.Celebrities, 1)
	})

	t.Run("should hide unavailable featured items", func(t *testing.T) {
		require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", "menu-2").Update("available", false).Error)

		page, err := Load()
		require.NoError(t, err)
		assert.Len(t, page.FeaturedMenu, 2)
	})
}
