// Package server builds the fiber app and its route table.
package server

import (
	"log/slog"
	"strings"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/analytics"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/audit"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/cart"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/celebrity"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/config"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/contact"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/event"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/home"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/logger"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/media"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/member"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/menu"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/order"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/press"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/reservation"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/review"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/settings"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/snapshot"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/social"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/supplier"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/weather"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Image uploads are capped at 10 MB; leave room for the multipart envelope.
const bodyLimit = 12 * 1024 * 1024

// New returns the app with middleware and every route registered.
func New(cfg *config.Config, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Melbourne Bistro API",
		ErrorHandler: web.ErrorHandler,
		BodyLimit:    bodyLimit,
	})

	origins := strings.Split(cfg.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.Middleware(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Static(media.URLPrefix, cfg.MediaPath)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := app.Group("/api")
	registerPublic(api)
	registerAuth(api, cfg)
	registerAdmin(api, cfg)

	return app
}

func registerPublic(api fiber.Router) {
	api.Get("/home", home.Handler())
	api.Get("/settings", settings.GetHandler())

	// Menu
	api.Get("/menu", menu.ListPublicHandler())
	api.Get("/menu/categories", menu.CategoriesHandler())
	api.Get("/menu/:id", menu.GetHandler())

	// Reservations and orders
	api.Post("/reservations", reservation.CreatePublicHandler())
	api.Get("/orders/:id", order.TrackHandler())

	// Carts
	api.Post("/carts", cart.CreateHandler())
	api.Get("/carts/:token", cart.GetHandler())
	api.Delete("/carts/:token", cart.ClearHandler())
	api.Post("/carts/:token/items", cart.AddItemHandler())
	api.Put("/carts/:token/items/:menuItemId", cart.UpdateItemHandler())
	api.Delete("/carts/:token/items/:menuItemId", cart.RemoveItemHandler())
	api.Post("/carts/:token/checkout", cart.CheckoutHandler())

	// Membership
	api.Post("/members", member.SignupHandler())

	// Events
	api.Get("/events", event.ListPublicHandler())
	api.Get("/events/:id", event.GetHandler())
	api.Post("/events/:id/bookings", event.BookHandler())

	// Reviews, press and the rest of the site content
	api.Get("/reviews", review.ListPublicHandler())
	api.Post("/reviews", review.SubmitHandler())
	api.Get("/celebrities", celebrity.ListPublicHandler())
	api.Get("/awards", press.ListAwardsHandler())
	api.Get("/press", press.ListFeaturesHandler())
	api.Get("/press/:id", press.GetFeatureHandler())
	api.Get("/suppliers", supplier.ListPublicHandler())
	api.Get("/suppliers/:id", supplier.GetHandler())
	api.Get("/social-posts", social.ListPublicHandler())
	api.Get("/weather-suggestions/current", weather.CurrentHandler())

	api.Post("/contact", contact.SubmitHandler())
}

func registerAuth(api fiber.Router, cfg *config.Config) {
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Get("/auth/me", auth.JWTMiddleware(cfg), auth.MeHandler())
}

func registerAdmin(api fiber.Router, cfg *config.Config) {
	admin := api.Group("/admin", auth.JWTMiddleware(cfg), auth.RequireRole(models.RoleAdmin, models.RoleEditor))
	adminOnly := auth.RequireRole(models.RoleAdmin)

	// Menu
	admin.Get("/menu-items", menu.ListHandler())
	admin.Get("/menu-items/export", menu.ExportHandler())
	admin.Post("/menu-items/import", menu.ImportHandler())
	admin.Post("/menu-items", menu.CreateHandler())
	admin.Get("/menu-items/:id", menu.GetHandler())
	admin.Put("/menu-items/:id", menu.UpdateHandler())
	admin.Patch("/menu-items/:id/availability", menu.AvailabilityHandler())
	admin.Patch("/menu-items/:id/featured", menu.FeaturedHandler())
	admin.Delete("/menu-items/:id", adminOnly, menu.DeleteHandler())

	// Reservations
	admin.Get("/reservations", reservation.ListHandler())
	admin.Get("/reservations/export", reservation.ExportHandler())
	admin.Post("/reservations", reservation.CreateHandler())
	admin.Get("/reservations/:id", reservation.GetHandler())
	admin.Put("/reservations/:id", reservation.UpdateHandler())
	admin.Patch("/reservations/:id/status", reservation.StatusHandler())
	admin.Delete("/reservations/:id", adminOnly, reservation.DeleteHandler())

	// Orders
	admin.Get("/orders", order.ListHandler())
	admin.Post("/orders", order.CreateHandler())
	admin.Get("/orders/:id", order.GetHandler())
	admin.Put("/orders/:id", order.UpdateHandler())
	admin.Patch("/orders/:id/status", order.StatusHandler())
	admin.Delete("/orders/:id", adminOnly, order.DeleteHandler())

	// Members
	admin.Get("/members", member.ListHandler())
	admin.Post("/members", member.CreateHandler())
	admin.Get("/members/:id", member.GetHandler())
	admin.Put("/members/:id", member.UpdateHandler())
	admin.Patch("/members/:id/status", member.StatusHandler())
	admin.Delete("/members/:id", adminOnly, member.DeleteHandler())

	// Events
	admin.Get("/events", event.ListHandler())
	admin.Post("/events", event.CreateHandler())
	admin.Get("/events/:id", event.GetHandler())
	admin.Put("/events/:id", event.UpdateHandler())
	admin.Patch("/events/:id/status", event.StatusHandler())
	admin.Patch("/events/:id/featured", event.FeaturedHandler())
	admin.Delete("/events/:id", adminOnly, event.DeleteHandler())

	// Reviews
	admin.Get("/reviews", review.ListHandler())
	admin.Post("/reviews", review.CreateHandler())
	admin.Get("/reviews/:id", review.GetHandler())
	admin.Put("/reviews/:id", review.UpdateHandler())
	admin.Patch("/reviews/:id/status", review.StatusHandler())
	admin.Patch("/reviews/:id/featured", review.FeaturedHandler())
	admin.Delete("/reviews/:id", adminOnly, review.DeleteHandler())

	// Social posts
	admin.Get("/social-posts", social.ListHandler())
	admin.Post("/social-posts", social.CreateHandler())
	admin.Get("/social-posts/:id", social.GetHandler())
	admin.Put("/social-posts/:id", social.UpdateHandler())
	admin.Patch("/social-posts/:id/status", social.StatusHandler())
	admin.Delete("/social-posts/:id", adminOnly, social.DeleteHandler())

	// Celebrities
	admin.Get("/celebrities", celebrity.ListHandler())
	admin.Post("/celebrities", celebrity.CreateHandler())
	admin.Get("/celebrities/:id", celebrity.GetHandler())
	admin.Put("/celebrities/:id", celebrity.UpdateHandler())
	admin.Patch("/celebrities/:id/featured", celebrity.FeaturedHandler())
	admin.Delete("/celebrities/:id", adminOnly, celebrity.DeleteHandler())

	// Awards and press features
	admin.Get("/awards", press.ListAwardsHandler())
	admin.Post("/awards", press.CreateAwardHandler())
	admin.Get("/awards/:id", press.GetAwardHandler())
	admin.Put("/awards/:id", press.UpdateAwardHandler())
	admin.Delete("/awards/:id", adminOnly, press.DeleteAwardHandler())
	admin.Get("/press", press.ListFeaturesHandler())
	admin.Post("/press", press.CreateFeatureHandler())
	admin.Get("/press/:id", press.GetFeatureHandler())
	admin.Put("/press/:id", press.UpdateFeatureHandler())
	admin.Patch("/press/:id/featured", press.FeaturedHandler())
	admin.Delete("/press/:id", adminOnly, press.DeleteFeatureHandler())

	// Suppliers
	admin.Get("/suppliers", supplier.ListHandler())
	admin.Post("/suppliers", supplier.CreateHandler())
	admin.Get("/suppliers/:id", supplier.GetHandler())
	admin.Put("/suppliers/:id", supplier.UpdateHandler())
	admin.Patch("/suppliers/:id/status", supplier.StatusHandler())
	admin.Patch("/suppliers/:id/featured", supplier.FeaturedHandler())
	admin.Delete("/suppliers/:id", adminOnly, supplier.DeleteHandler())

	// Weather suggestions
	admin.Get("/weather-suggestions", weather.ListHandler())
	admin.Post("/weather-suggestions", weather.CreateHandler())
	admin.Get("/weather-suggestions/:id", weather.GetHandler())
	admin.Put("/weather-suggestions/:id", weather.UpdateHandler())
	admin.Patch("/weather-suggestions/:id/active", weather.ActiveHandler())
	admin.Delete("/weather-suggestions/:id", adminOnly, weather.DeleteHandler())

	// Contact inbox
	admin.Get("/contact-messages", contact.ListHandler())
	admin.Get("/contact-messages/:id", contact.GetHandler())
	admin.Patch("/contact-messages/:id/read", contact.ReadHandler())
	admin.Delete("/contact-messages/:id", adminOnly, contact.DeleteHandler())

	// Settings
	admin.Get("/settings", settings.GetHandler())
	admin.Put("/settings", settings.UpdateHandler())

	// Media gallery
	admin.Get("/media", media.ListHandler(cfg))
	admin.Post("/media", media.UploadHandler(cfg))
	admin.Post("/media/import", media.ImportHandler(cfg))
	admin.Delete("/media/:name", adminOnly, media.DeleteHandler(cfg))

	// Analytics
	admin.Get("/analytics/summary", analytics.SummaryHandler())
	admin.Get("/analytics/revenue", analytics.RevenueHandler())

	// Sync
	admin.Get("/sync", snapshot.ExportHandler())
	admin.Post("/sync", adminOnly, snapshot.ReplaceHandler())
	admin.Post("/sync/pull", adminOnly, snapshot.PullHandler(cfg))

	// Audit logs
	admin.Get("/audit-logs", audit.ListAuditLogsHandler())
	admin.Post("/audit-logs/:id/undo", adminOnly, audit.UndoAuditLogHandler())

	// CMS users
	admin.Get("/users", adminOnly, auth.ListUsersHandler())
	admin.Post("/users", adminOnly, auth.CreateUserHandler())
	admin.Delete("/users/:id", adminOnly, auth.DeleteUserHandler())
}
