// Package utils holds small HTTP helpers shared by the handlers.
package utils

import (
	"errors"

	domain "cardvault/internal/errors"
	"cardvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetOperatorClaims extracts the operator claims from the fiber context.
func GetOperatorClaims(c *fiber.Ctx) (*models.OperatorClaims, error) {
	v := c.Locals("claims")
	if v == nil {
		return nil, errors.New("claims not found in context")
	}
	claims, ok := v.(*models.OperatorClaims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, fiber.Map{"error": message})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": message})
}

// DomainError maps a ledger domain error onto the HTTP status that
// matches its kind and returns the stable error code alongside the
// message.
func DomainError(c *fiber.Ctx, err error) error {
	var derr *domain.DomainError
	if !errors.As(err, &derr) {
		return InternalError(c, err.Error())
	}

	status := fiber.StatusInternalServerError
	switch derr.Kind {
	case domain.KindValidation:
		status = fiber.StatusBadRequest
	case domain.KindAuth:
		status = fiber.StatusForbidden
	case domain.KindState:
		status = fiber.StatusConflict
	case domain.KindExternal:
		status = fiber.StatusBadGateway
	}
	return Respond(c, status, fiber.Map{
		"error": derr.Message,
		"code":  derr.Code,
	})
}
