package cart

import (
	"net/http"
	"testing"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/menu"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := testutil.NewApp()
	app.Post("/api/carts", CreateHandler())
	app.Get("/api/carts/:token", GetHandler())
	app.Delete("/api/carts/:token", ClearHandler())
	app.Post("/api/carts/:token/items", AddItemHandler())
	app.Put("/api/carts/:token/items/:menuItemId", UpdateItemHandler())
	app.Delete("/api/carts/:token/items/:menuItemId", RemoveItemHandler())
	app.Post("/api/carts/:token/checkout", CheckoutHandler())
	return app
}

func newCart(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := testutil.Do(t, app, http.MethodPost, "/api/carts", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var v View
	testutil.Decode(t, resp, &v)
	require.NotEmpty(t, v.ID)
	return v.ID
}

func addItem(t *testing.T, app *fiber.App, token, id string, qty int) *http.Response {
	t.Helper()
	return testutil.Do(t, app, http.MethodPost, "/api/carts/"+token+"/items", map[string]any{"menuItemId": id, "quantity": qty}, "")
}

var customer = map[string]any{
	"customerName": "Ava Brown",
	"email":        "ava@example.com",
	"phone":        "0400 000 999",
	"type":         "delivery",
	"address":      "10 Lygon St, Carlton",
}

func TestCartItems(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()
	token := newCart(t, app)

	t.Run("should merge quantities of the same item", func(t *testing.T) {
		require.Equal(t, http.StatusOK, addItem(t, app, token, "menu-1", 1).StatusCode)
		resp := addItem(t, app, token, "menu-1", 2)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var v View
		testutil.Decode(t, resp, &v)
		require.Len(t, v.Items, 1)
		assert.Equal(t, 3, v.Items[0].Quantity)
		assert.Equal(t, "Wagyu Beef Tenderloin", v.Items[0].Name)
		assert.Equal(t, 3, v.ItemCount)
		assert.Equal(t, float64(204), v.Subtotal)
	})

	t.Run("should default the quantity to one", func(t *testing.T) {
		resp := addItem(t, app, token, "menu-10", 0)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var v View
		testutil.Decode(t, resp, &v)
		require.Len(t, v.Items, 2)
		assert.Equal(t, 1, v.Items[1].Quantity)
	})

	t.Run("should reject unknown and unavailable items", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, addItem(t, app, token, "menu-404", 1).StatusCode)
		assert.Equal(t, http.StatusConflict, addItem(t, app, token, "menu-6", 1).StatusCode)
	})

	t.Run("should update and remove with quantity zero", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPut, "/api/carts/"+token+"/items/menu-1", map[string]any{"quantity": 5}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var v View
		testutil.Decode(t, resp, &v)
		assert.Equal(t, 5, v.Items[0].Quantity)

		resp = testutil.Do(t, app, http.MethodPut, "/api/carts/"+token+"/items/menu-10", map[string]any{"quantity": 0}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		testutil.Decode(t, resp, &v)
		require.Len(t, v.Items, 1)
		assert.Equal(t, "menu-1", v.Items[0].MenuItemID)
	})

	t.Run("should reject a negative quantity", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPut, "/api/carts/"+token+"/items/menu-1", map[string]any{"quantity": -1}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should 404 for a line that is not in the cart", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodDelete, "/api/carts/"+token+"/items/menu-9", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("should clear the cart", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodDelete, "/api/carts/"+token, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var v View
		testutil.Decode(t, resp, &v)
		assert.Empty(t, v.Items)
		assert.Zero(t, v.Subtotal)
	})

	t.Run("should 404 for an unknown token", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodGet, "/api/carts/unknown", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("should create an order at current prices and empty the cart", func(t *testing.T) {
		testutil.SetupSeededDB(t)
		app := newApp()
		token := newCart(t, app)
		require.Equal(t, http.StatusOK, addItem(t, app, token, "menu-1", 2).StatusCode)
		require.Equal(t, http.StatusOK, addItem(t, app, token, "menu-7", 1).StatusCode)

		_, err := menu.Items.Update(models.Actor{Name: "test"}, "menu-1", func(m *models.MenuItem) error {
			m.Price = 70
			return nil
		})
		require.NoError(t, err)

		resp := testutil.Do(t, app, http.MethodPost, "/api/carts/"+token+"/checkout", customer, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var o models.Order
		testutil.Decode(t, resp, &o)
		assert.Equal(t, models.OrderPending, o.Status)
		assert.Equal(t, float64(158), o.Subtotal)
		assert.Equal(t, float64(8), o.DeliveryFee)
		assert.Equal(t, float64(166), o.Total)
		require.Len(t, o.Items, 2)
		assert.Equal(t, float64(70), o.Items[0].Price)

		var stored models.Order
		require.NoError(t, database.DB.First(&stored, "id = ?", o.ID).Error)
		assert.Equal(t, o.Total, stored.Total)

		resp = testutil.Do(t, app, http.MethodGet, "/api/carts/"+token, nil, "")
		var v View
		testutil.Decode(t, resp, &v)
		assert.Empty(t, v.Items)

		var logs []models.AuditLog
		require.NoError(t, database.DB.Where("entity_type = ? AND entity_id = ?", "order", o.ID).Find(&logs).Error)
		assert.Len(t, logs, 1)
	})

	t.Run("should not charge delivery for pickup", func(t *testing.T) {
		testutil.SetupSeededDB(t)
		app := newApp()
		token := newCart(t, app)
		require.Equal(t, http.StatusOK, addItem(t, app, token, "menu-9", 2).StatusCode)

		pickup := map[string]any{"customerName": "Ava", "email": "ava@example.com", "phone": "1", "type": "pickup"}
		resp := testutil.Do(t, app, http.MethodPost, "/api/carts/"+token+"/checkout", pickup, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var o models.Order
		testutil.Decode(t, resp, &o)
		assert.Zero(t, o.DeliveryFee)
		assert.Equal(t, float64(32), o.Total)
	})

	t.Run("should require an address for delivery", func(t *testing.T) {
		testutil.SetupSeededDB(t)
		app := newApp()
		token := newCart(t, app)
		require.Equal(t, http.StatusOK, addItem(t, app, token, "menu-9", 1).StatusCode)

		body := map[string]any{"customerName": "Ava", "email": "ava@example.com", "phone": "1", "type": "delivery"}
		resp := testutil.Do(t, app, http.MethodPost, "/api/carts/"+token+"/checkout", body, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errBody struct {
			Fields map[string]string `json:"fields"`
		}
		testutil.Decode(t, resp, &errBody)
		assert.Contains(t, errBody.Fields, "address")
	})

	t.Run("should reject an empty cart", func(t *testing.T) {
		testutil.SetupSeededDB(t)
		app := newApp()
		token := newCart(t, app)

		resp := testutil.Do(t, app, http.MethodPost, "/api/carts/"+token+"/checkout", customer, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should list orphaned lines and keep the cart", func(t *testing.T) {
		testutil.SetupSeededDB(t)
		app := newApp()
		token := newCart(t, app)
		require.Equal(t, http.StatusOK, addItem(t, app, token, "menu-1", 1).StatusCode)
		require.Equal(t, http.StatusOK, addItem(t, app, token, "menu-2", 1).StatusCode)

		_, err := menu.Items.Delete(models.Actor{Name: "test"}, "menu-2")
		require.NoError(t, err)

		resp := testutil.Do(t, app, http.MethodPost, "/api/carts/"+token+"/checkout", customer, "")
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		var body struct {
			MissingItemIDs []string `json:"missingItemIds"`
		}
		testutil.Decode(t, resp, &body)
		assert.Equal(t, []string{"menu-2"}, body.MissingItemIDs)

		var orders int64
		require.NoError(t, database.DB.Model(&models.Order{}).Where("email = ?", "ava@example.com").Count(&orders).Error)
		assert.Zero(t, orders)

		resp = testutil.Do(t, app, http.MethodGet, "/api/carts/"+token, nil, "")
		var v View
		testutil.Decode(t, resp, &v)
		assert.Len(t, v.Items, 2)
	})
}
