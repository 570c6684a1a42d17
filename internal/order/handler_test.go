package order

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
	app.Get("/api/orders/:id", TrackHandler())

	admin := app.Group("/api/admin", testutil.Protected())
	admin.Get("/orders", ListHandler())
	admin.Post("/orders", CreateHandler())
	admin.Put("/orders/:id", UpdateHandler())
	admin.Patch("/orders/:id/status", StatusHandler())
	return app
}

func TestCreateHandler(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()
	_, token := testutil.CreateUser(t, models.RoleEditor)

	testCases := map[string]struct {
		body          map[string]any
		expectedTotal float64
	}{
		"should add the delivery fee for delivery": {
			body: map[string]any{
				"customerName": "Zoe", "email": "zoe@example.com", "phone": "1", "type": "delivery",
				"address": "5 Chapel St", "deliveryFee": 8,
				"items": []map[string]any{{"menuItemId": "menu-7", "name": "Pavlova", "price": 18, "quantity": 2}},
			},
			expectedTotal: 44,
		},
		"should ignore the delivery fee for dine-in": {
			body: map[string]any{
				"customerName": "Zoe", "email": "zoe@example.com", "phone": "1", "type": "dine-in",
				"deliveryFee": 8, "subtotal": 1, "total": 1,
				"items": []map[string]any{{"menuItemId": "menu-10", "name": "Flat White", "price": 5.5, "quantity": 3}},
			},
			expectedTotal: 16.5,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			resp := testutil.Do(t, app, http.MethodPost, "/api/admin/orders", tc.body, token)
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			var o models.Order
			testutil.Decode(t, resp, &o)
			assert.Equal(t, tc.expectedTotal, o.Total)
			assert.Equal(t, models.OrderPending, o.Status)
		})
	}

	t.Run("should reject an unknown order type", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/admin/orders", map[string]any{
			"customerName": "Zoe", "email": "zoe@example.com", "phone": "1", "type": "drone",
		}, token)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Fields map[string]string `json:"fields"`
		}
		testutil.Decode(t, resp, &body)
		assert.Equal(t, "oneof=pickup delivery dine-in", body.Fields["type"])
	})
}

func TestTrackHandler(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()
	_, token := testutil.CreateUser(t, models.RoleEditor)

	resp := testutil.Do(t, app, http.MethodPatch, "/api/admin/orders/order-2/status", map[string]any{"status": "ready"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutil.Do(t, app, http.MethodGet, "/api/orders/order-2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tracked map[string]any
	testutil.Decode(t, resp, &tracked)
	assert.Equal(t, "ready", tracked["status"])
	assert.Equal(t, float64(54), tracked["total"])
	assert.NotContains(t, tracked, "email")

	resp = testutil.Do(t, app, http.MethodGet, "/api/orders/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
