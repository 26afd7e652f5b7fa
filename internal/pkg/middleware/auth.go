package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/proveo-app/proveo/app/models"
)

const (
	KeyUserID    = "user_id"
	KeyUserEmail = "user_email"
	KeyUserRole  = "user_role"
)

// RequireAuth validates the bearer token and stores the principal in locals.
// Returns JSON 401 when the token is missing or invalid.
func RequireAuth(c *fiber.Ctx) error {
	token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return unauthorized(c, "missing bearer token")
	}

	claims, err := VerifyToken(token)
	if err != nil {
		if err == ErrExpiredToken {
			return unauthorized(c, "token expired")
		}
		return unauthorized(c, "invalid token")
	}

	c.Locals(KeyUserID, claims.UserID)
	c.Locals(KeyUserEmail, claims.Email)
	c.Locals(KeyUserRole, claims.Role)
	return c.Next()
}

// RequireProvider gates routes to principals with the PROVIDER role.
// Must run after RequireAuth.
func RequireProvider(c *fiber.Ctx) error {
	if UserRole(c) != models.RoleProvider {
		return forbidden(c, "provider role required")
	}
	return c.Next()
}

// RequireStaff gates routes to ADMIN and STAFF principals.
// Must run after RequireAuth.
func RequireStaff(c *fiber.Ctx) error {
	role := UserRole(c)
	if role != models.RoleAdmin && role != models.RoleStaff {
		return forbidden(c, "staff role required")
	}
	return c.Next()
}

// UserID returns the authenticated user id from locals, 0 when absent.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(KeyUserID).(uint); ok {
		return id
	}
	return 0
}

// UserEmail returns the authenticated user email from locals.
func UserEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals(KeyUserEmail).(string); ok {
		return email
	}
	return ""
}

// UserRole returns the authenticated user role from locals.
func UserRole(c *fiber.Ctx) string {
	if role, ok := c.Locals(KeyUserRole).(string); ok {
		return role
	}
	return ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "unauthorized",
		"message": message,
	})
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   "forbidden",
		"message": message,
	})
}
