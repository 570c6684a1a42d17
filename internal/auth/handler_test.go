package auth_test

import (
	"net/http"
	"testing"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func newApp() *fiber.App {
	cfg := testutil.Config()
	app := testutil.NewApp()
	app.Post("/api/auth/register-admin", auth.RegisterAdminHandler(cfg))
	app.Post("/api/auth/login", auth.LoginHandler(cfg))

	admin := app.Group("/api/admin", testutil.Protected())
	admin.Post("/users", auth.CreateUserHandler())
	return app
}

func TestRegisterAdminHandler(t *testing.T) {
	testutil.SetupDB(t)
	app := newApp()

	invalid := map[string]struct {
		body   map[string]any
		fields map[string]string
	}{
		"missing fields": {
			body:   map[string]any{},
			fields: map[string]string{"name": "required", "email": "required", "password": "required"},
		},
		"malformed email": {
			body:   map[string]any{"name": "Ava", "email": "ava-at-bistro", "password": "long-enough"},
			fields: map[string]string{"email": "email"},
		},
		"short password": {
			body:   map[string]any{"name": "Ava", "email": "ava@bistro.test", "password": "short"},
			fields: map[string]string{"password": "min=8"},
		},
		"blank name": {
			body:   map[string]any{"name": "   ", "email": "ava@bistro.test", "password": "long-enough"},
			fields: map[string]string{"name": "required"},
		},
	}
	for name, tc := range invalid {
		t.Run(name, func(t *testing.T) {
			resp := testutil.Do(t, app, http.MethodPost, "/api/auth/register-admin", tc.body, "")
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body errorBody
			testutil.Decode(t, resp, &body)
			assert.Equal(t, "Validation failed", body.Error)
			assert.Equal(t, tc.fields, body.Fields)
		})
	}

	t.Run("should create the first admin", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/auth/register-admin", map[string]any{
			"name": "Ava", "email": " Ava@Bistro.test ", "password": "long-enough",
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var user auth.UserResponse
		testutil.Decode(t, resp, &user)
		assert.Equal(t, "ava@bistro.test", user.Email)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("should refuse a second admin", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/auth/register-admin", map[string]any{
			"name": "Ben", "email": "ben@bistro.test", "password": "long-enough",
		}, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("should log in with the new account", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/auth/login", map[string]any{
			"email": "AVA@bistro.test", "password": "long-enough",
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string            `json:"token"`
			User  auth.UserResponse `json:"user"`
		}
		testutil.Decode(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "ava@bistro.test", body.User.Email)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/auth/login", map[string]any{
			"email": "ava@bistro.test", "password": "not-the-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRegisterAdminHandlerDatabaseFailure(t *testing.T) {
	db := testutil.SetupDB(t)
	app := newApp()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := testutil.Do(t, app, http.MethodPost, "/api/auth/register-admin", map[string]any{
		"name": "Ava", "email": "ava@bistro.test", "password": "long-enough",
	}, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestLoginHandlerValidation(t *testing.T) {
	testutil.SetupDB(t)
	app := newApp()

	tests := map[string]struct {
		body   map[string]any
		fields map[string]string
	}{
		"missing fields":  {body: map[string]any{}, fields: map[string]string{"email": "required", "password": "required"}},
		"malformed email": {body: map[string]any{"email": "nobody", "password": "x"}, fields: map[string]string{"email": "email"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resp := testutil.Do(t, app, http.MethodPost, "/api/auth/login", tc.body, "")
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body errorBody
			testutil.Decode(t, resp, &body)
			assert.Equal(t, tc.fields, body.Fields)
		})
	}
}

func TestCreateUserHandler(t *testing.T) {
	testutil.SetupDB(t)
	app := newApp()
	_, token := testutil.CreateUser(t, models.RoleAdmin)

	t.Run("should default the role to editor", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/admin/users", map[string]any{
			"name": "Eli", "email": "eli@bistro.test", "password": "long-enough",
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var user auth.UserResponse
		testutil.Decode(t, resp, &user)
		assert.Equal(t, models.RoleEditor, user.Role)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/admin/users", map[string]any{
			"name": "Eli", "email": "eli2@bistro.test", "password": "long-enough", "role": "owner",
		}, token)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorBody
		testutil.Decode(t, resp, &body)
		assert.Equal(t, map[string]string{"role": "oneof=admin editor"}, body.Fields)
	})

	t.Run("should reject a taken email", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, "/api/admin/users", map[string]any{
			"name": "Eli", "email": "ELI@bistro.test", "password": "long-enough",
		}, token)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	var count int64
	require.NoError(t, database.DB.Model(&models.User{}).Where("email = ?", "eli2@bistro.test").Count(&count).Error)
	assert.Zero(t, count)
}
