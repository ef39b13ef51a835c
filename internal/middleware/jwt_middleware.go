package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"streetbazaar/internal/models"
	"streetbazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

const localUser = "user"

// AuthRequired is a Fiber middleware that turns a bearer token into the calling user.
func AuthRequired(authService *services.AuthService, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Not authenticated")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			logger.Debug("token validation failed", "error", err)
			return unauthorized(c, "Invalid token")
		}

		user, err := authService.ResolveUser(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return unauthorized(c, "User not found")
			}
			logger.Error("failed to resolve user", "user_id", userID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": "Internal server error",
			})
		}

		c.Locals(localUser, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil on public routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": detail,
	})
}
