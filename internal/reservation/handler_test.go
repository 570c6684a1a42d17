package reservation

import (
	"net/http"
	"testing"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newApp() *fiber.App {
	app := testutil.NewApp()
	app.Post("/api/reservations", CreatePublicHandler())

	admin := app.Group("/api/admin", testutil.Protected())
	admin.Get("/reservations", ListHandler())
	admin.Get("/reservations/export", ExportHandler())
	admin.Post("/reservations", CreateHandler())
	admin.Patch("/reservations/:id/status", StatusHandler())
	return app
}

func booking(overrides map[string]any) map[string]any {
	b := map[string]any{
		"name":   "Mia Nguyen",
		"email":  "Mia@Example.com",
		"phone":  "0400 111 222",
		"date":   time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		"time":   "19:30",
		"guests": 2,
	}
	for k, v := range overrides {
		b[k] = v
	}
	return b
}

func TestCreatePublicHandler(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()

	testCases := map[string]struct {
		body     map[string]any
		status   int
		badField string
	}{
		"should accept a valid booking": {
			body:   booking(nil),
			status: http.StatusCreated,
		},
		"should reject a party over the limit": {
			body:     booking(map[string]any{"guests": 13}),
			status:   http.StatusBadRequest,
			badField: "guests",
		},
		"should reject a date in the past": {
			body:     booking(map[string]any{"date": "2020-01-01"}),
			status:   http.StatusBadRequest,
			badField: "date",
		},
		"should reject a malformed time": {
			body:     booking(map[string]any{"time": "7pm"}),
			status:   http.StatusBadRequest,
			badField: "time",
		},
		"should reject zero guests": {
			body:     booking(map[string]any{"guests": 0}),
			status:   http.StatusBadRequest,
			badField: "guests",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			resp := testutil.Do(t, app, http.MethodPost, "/api/reservations", tc.body, "")
			require.Equal(t, tc.status, resp.StatusCode)

			if tc.badField != "" {
				var body struct {
					Fields map[string]string `json:"fields"`
				}
				testutil.Decode(t, resp, &body)
				assert.Contains(t, body.Fields, tc.badField)
			}
		})
	}

	t.Run("should force pending status and ignore the client id", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/reservations",
			booking(map[string]any{"status": "confirmed", "id": "reservation-1"}), "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var r models.Reservation
		testutil.Decode(t, resp, &r)
		assert.Equal(t, models.ReservationPending, r.Status)
		assert.NotEqual(t, "reservation-1", r.ID)
		assert.Equal(t, "mia@example.com", r.Email)
	})
}

func TestStatusHandler(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()
	_, token := testutil.CreateUser(t, models.RoleEditor)

	resp := testutil.Do(t, app, http.MethodPatch, "/api/admin/reservations/reservation-2/status", map[string]any{"status": "seated"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	r, err := Reservations.Get("reservation-2")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationSeated, r.Status)

	resp = testutil.Do(t, app, http.MethodPatch, "/api/admin/reservations/reservation-2/status", map[string]any{"status": "lost"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = testutil.Do(t, app, http.MethodGet, "/api/admin/reservations?status=seated", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.Reservation
	testutil.Decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "reservation-2", list[0].ID)
}

func TestExportHandler(t *testing.T) {
	testutil.SetupSeededDB(t)
	app := newApp()
	_, token := testutil.CreateUser(t, models.RoleEditor)

	total, err := Reservations.Count(store.Filter{})
	require.NoError(t, err)

	resp := testutil.Do(t, app, http.MethodGet, "/api/admin/reservations/export", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	wb, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	rows, err := wb.GetRows("Reservations")
	require.NoError(t, err)
	assert.Len(t, rows, int(total)+1)
	assert.Equal(t, "Date", rows[0][0])
}
