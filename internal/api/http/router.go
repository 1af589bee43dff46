package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/KingDaeWon/dw-web/internal/api/http/handlers"
	"github.com/KingDaeWon/dw-web/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Members        *handlers.MembersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The authenticator runs on every request
// and only attaches principals; individual guards reject anonymous access.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.AuthMiddleware.Authenticate)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/reissue", cfg.Auth.Reissue)
	authGroup.Post("/logout", auth.RequireAuthenticated(), cfg.Auth.Logout)

	api := app.Group("/api")
	api.Get("/member/me", auth.RequireAuthenticated(), cfg.Members.Me)
	api.Get("/member/:memberName", cfg.Members.ByName)
}
