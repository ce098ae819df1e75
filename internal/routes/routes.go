package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/account-service/internal/config"
	"github.com/ahmetcoskunkizilkaya/account-service/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/account-service/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter per-IP limit on top of the per-account
	// counters maintained by the service itself.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Confirmation flows — public, code-guarded
	api.Post("/users/confirm-email", userHandler.ConfirmEmail)
	api.Post("/users/password-reset", userHandler.PasswordReset)
	api.Post("/users/confirm-reset-password", userHandler.ConfirmResetPassword)

	// Profile views
	api.Get("/users", userHandler.List)
	api.Get("/users/:id", userHandler.GetDetails)

	// Protected routes (JWT required)
	api.Post("/users", middleware.JWTProtected(cfg), userHandler.Create)
	api.Put("/users/:id", middleware.JWTProtected(cfg), userHandler.Update)
	api.Delete("/users/:id", middleware.JWTProtected(cfg), userHandler.Delete)
}
