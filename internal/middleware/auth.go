// Package middleware provides HTTP middleware for the API surface:
// operator authentication and role checks over the fiber framework.
package middleware

import (
	"strings"

	"cardvault/internal/config"
	"cardvault/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth validates the operator JWT and stores the claims in the request
// context. The token's address claim is the caller identity handed to
// the registry.
func Auth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &models.OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.GetEnv("JWT_SECRET", "cardvault")), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	claims, ok := token.Claims.(*models.OperatorClaims)
	if !ok || claims.Address == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
	}

	c.Locals("claims", claims)
	return c.Next()
}

// RequireOwnerRole rejects callers whose token does not carry the owner
// role. The registry still re-checks the caller identity against the
// current owner; this middleware only keeps obvious non-owners off the
// owner-only endpoints.
func RequireOwnerRole(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.OperatorClaims)
	if !ok || claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	if !claims.CanMutate() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
	}
	return c.Next()
}
