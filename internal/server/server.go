// Package server assembles the HTTP gateway.
package server

import (
	"errors"
	"log/slog"
	"time"

	"streetbazaar/internal/config"
	"streetbazaar/internal/handlers"
	"streetbazaar/internal/middleware"
	"streetbazaar/internal/repositories"
	"streetbazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Dependencies are the collaborators New wires into the gateway.
type Dependencies struct {
	Config *config.Config
	Store  *repositories.Store
	// Publisher may be nil, in which case order events are not sent.
	Publisher services.EventPublisher
	Logger    *slog.Logger
	// DisableAccessLog turns off the per-request log line, mainly for tests.
	DisableAccessLog bool
}

// New builds the Fiber app with every marketplace route mounted under the API prefix.
func New(deps Dependencies) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		AppName:      "StreetBazaar",
		Immutable:    true, // request values are kept by the memory store
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if !deps.DisableAccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,OPTIONS",
	}))

	hasher := services.NewPasswordHasher(cfg.BcryptCost)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(deps.Store.Users, hasher, tokens, log)
	productService := services.NewProductService(deps.Store.Products, log)
	orderService := services.NewOrderService(deps.Store.Orders, deps.Publisher, log)

	validate := validator.New()
	requireAuth := middleware.AuthRequired(authService, log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := app.Group(cfg.APIPrefix)
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "StreetBazaar API is running!"})
	})

	handlers.NewAuthHandler(authService, validate, log).RegisterRoutes(api, requireAuth)
	handlers.NewProductHandler(productService, validate, log).RegisterRoutes(api, requireAuth)
	handlers.NewOrderHandler(orderService, validate, log).RegisterRoutes(api, requireAuth)

	return app
}

// errorHandler renders errors that escape a handler (unknown routes, panics) in
// the same {"detail": ...} shape the handlers use.
func errorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			msg = fiberErr.Message
		} else {
			log.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(fiber.Map{"detail": msg})
	}
}
