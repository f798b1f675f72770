package middleware

import (
	"strings"

	"room-rescue/types"
	"room-rescue/utils"

	"github.com/gofiber/fiber/v2"
)

// IsAuthenticated guards a route with a Bearer access token. When roles are
// given, the token must carry at least one of them.
func IsAuthenticated(requiredRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Authorization token required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid authorization header format",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := utils.ParseToken(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if typ, _ := claims["typ"].(string); typ != utils.TokenTypeAccess {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Access token required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		roleSet := make(map[string]bool)
		for _, r := range utils.ClaimRoles(claims) {
			roleSet[r] = true
		}

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if roleSet[r] {
					allowed = true
					break
				}
			}
			if !allowed {
				return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
					Message: "Insufficient role",
					Status:  fiber.StatusForbidden,
				})
			}
		}

		c.Locals("user", claims)
		c.Locals("roles", roleSet)
		return c.Next()
	}
}

// RequireRoles allows access if the token holds any of the given roles.
func RequireRoles(roles ...string) fiber.Handler {
	return IsAuthenticated(roles)
}

// RequireAuthentication only requires a valid access token.
func RequireAuthentication() fiber.Handler {
	return IsAuthenticated(nil)
}
