package controllers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/app/repository"
	"github.com/proveo-app/proveo/internal/pkg/middleware"
)

var authValidate = validator.New()

const tokenTTL = 24 * time.Hour

// RegisterPayload carries the account creation fields.
type RegisterPayload struct {
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginPayload carries the credentials for token issuance.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MeResponse is the public shape of a principal.
type MeResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleRegisterAdmin creates a consortium administrator account.
func HandleRegisterAdmin(c *fiber.Ctx) error {
	return registerUser(c, models.RoleAdmin)
}

// HandleRegisterProvider creates a provider account. The directory profile is
// provisioned immediately so the new user can edit it after login.
func HandleRegisterProvider(c *fiber.Ctx) error {
	return registerUser(c, models.RoleProvider)
}

func registerUser(c *fiber.Ctx, role string) error {
	var payload RegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := authValidate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	factory := repository.GetGlobalFactory()
	exists, err := factory.GetUserRepository().EmailExists(payload.Email)
	if err != nil {
		return serverError(c, err)
	}
	if exists {
		return badRequest(c, "email already registered")
	}

	user := &models.User{Email: payload.Email, Role: role}
	if err := user.SetPassword(payload.Password); err != nil {
		return serverError(c, err)
	}
	if err := user.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := factory.GetUserRepository().Create(user); err != nil {
		return serverError(c, err)
	}

	if user.IsProviderRole() {
		if _, err := factory.GetProviderRepository().GetOrCreateByUser(user); err != nil {
			return serverError(c, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(MeResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
}

// HandleLogin verifies credentials and issues a bearer token.
func HandleLogin(c *fiber.Ctx) error {
	var payload LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := authValidate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(payload.Email)
	if err != nil || !user.CheckPassword(payload.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "invalid credentials",
		})
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, tokenTTL)
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{
		"token":      token,
		"expires_in": int(tokenTTL.Seconds()),
	})
}

// HandleMe returns the authenticated principal.
func HandleMe(c *fiber.Ctx) error {
	return c.JSON(MeResponse{
		ID:    middleware.UserID(c),
		Email: middleware.UserEmail(c),
		Role:  middleware.UserRole(c),
	})
}
