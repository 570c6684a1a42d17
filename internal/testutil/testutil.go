// Package testutil wires an in-memory database and a bare fiber app for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/config"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const JWTSecret = "test-secret-that-is-long-enough-for-hs256"

func Config() *config.Config {
	return &config.Config{
		HTTPPort:       "8080",
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    "file::memory:",
		JWTSecret:      JWTSecret,
		JWTTTL:         time.Hour,
		CORSOrigins:    "*",
		LogLevel:       "error",
	}
}

// SetupDB installs a fresh migrated in-memory database as database.DB.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SetupSeededDB is SetupDB plus the demo data.
func SetupSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := SetupDB(t)
	require.NoError(t, database.Seed(db))
	return db
}

// NewApp returns an app with the production error handler and no routes.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler})
}

// CreateUser stores a CMS user with the role and returns it with a signed token.
func CreateUser(t *testing.T, role models.UserRole) (models.User, string) {
	t.Helper()

	user := models.User{
		Base:         models.Base{ID: uuid.NewString()},
		Name:         string(role) + " user",
		Email:        uuid.NewString() + "@melbournebistro.test",
		PasswordHash: "unused",
		Role:         role,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := auth.GenerateToken(JWTSecret, time.Hour, &user)
	require.NoError(t, err)
	return user, token
}

// Protected returns the JWT middleware configured with the test secret.
func Protected() fiber.Handler {
	return auth.JWTMiddleware(Config())
}

// Do sends a request to the app; body is JSON-encoded unless it is nil.
func Do(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Decode reads a JSON response body into v.
func Decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
