package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lancehub-id/lancehub_be/internal/utils"
)

// RequireFreelancer gates freelancer-only actions such as bidding.
func RequireFreelancer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("user")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		token, ok := raw.(*jwt.Token)
		if !ok || token == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		if !claims.IsFreelancer {
			return fiber.NewError(fiber.StatusForbidden, "Only freelancers can perform this action")
		}

		return c.Next()
	}
}
