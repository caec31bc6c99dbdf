package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/image-service/internal/api/http/handlers"
	"github.com/spec-kit/image-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Images         *handlers.ImagesHandler
	AuthMiddleware *auth.Middleware
}

// NewAccessPolicy declares which paths need an authenticated identity.
// Order matters: first match wins.
func NewAccessPolicy() *auth.AccessPolicy {
	return auth.NewAccessPolicy(auth.Public,
		auth.Rule{Pattern: "/users/login", Requirement: auth.Public},
		auth.Rule{Pattern: "/users/register", Requirement: auth.Public},
		auth.Rule{Pattern: "/health/*", Requirement: auth.Public},
		auth.Rule{Pattern: "/images/*", Requirement: auth.RequireAuth},
	)
}

// RegisterRoutes wires HTTP routes behind the authentication pipeline.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Authenticate)
	app.Use(cfg.AuthMiddleware.Enforce)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("/login", cfg.Users.Login)
	users.Post("/register", cfg.Users.Register)

	images := app.Group("/images")
	images.Post("/upload", cfg.Images.Upload)
	images.Delete("/delete", cfg.Images.Delete)
	images.Get("/view", cfg.Images.View)
}
