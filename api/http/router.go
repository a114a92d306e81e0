package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/users-api/api/http/handlers"
)

// Routes bundles what Register needs to mount the API.
type Routes struct {
	Users  *handlers.UsersHandler
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler

	// AdminOnly guards administrator routes.
	AdminOnly fiber.Handler
	// LoginLimit throttles login attempts; nil disables throttling.
	LoginLimit fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, r Routes) {
	// Liveness and store connectivity
	app.Get("/", r.Health.Root)
	app.Get("/health", r.Health.Health)

	api := app.Group("/api")

	api.Post("/users", r.Users.Create)
	api.Get("/users", r.Users.List)
	api.Delete("/users/:id", r.AdminOnly, r.Users.Delete)

	if r.LoginLimit != nil {
		api.Post("/login", r.LoginLimit, r.Auth.Login)
	} else {
		api.Post("/login", r.Auth.Login)
	}
}
