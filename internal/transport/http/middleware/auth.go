package middleware

import (
	"github.com/fleetflash/backend/internal/config"
	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/gofiber/fiber/v2"
)

// Token extracts the bearer token from X-Admin-Token or Authorization.
func Token(c *fiber.Ctx) string {
	token := c.Get("X-Admin-Token")
	if token != "" {
		return token
	}
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// SessionAuth accepts a session token issued by the auth service or, when
// configured, the static admin API key.
func SessionAuth(cfg *config.Config, auth ports.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := Token(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		if cfg.Auth.AdminAPIKey != "" && token == cfg.Auth.AdminAPIKey {
			return c.Next()
		}

		user, err := auth.Validate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}
		c.Locals("user", user)
		return c.Next()
	}
}
