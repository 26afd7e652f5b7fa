package controllers

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/proveo-app/proveo/app/repository"
	"github.com/proveo-app/proveo/internal/pkg/storage"
)

var providerValidate = validator.New()

// ProviderProfilePayload carries the descriptive fields a provider may edit.
// Derived fields (visibility, tier, rating) are never read from input.
type ProviderProfilePayload struct {
	DisplayName string `json:"display_name" validate:"max=140"`
	LegalName   string `json:"legal_name" validate:"max=180"`
	TaxID       string `json:"tax_id" validate:"max=20"`
	Description string `json:"description"`

	Phone       string `json:"phone" validate:"max=50"`
	Whatsapp    string `json:"whatsapp" validate:"max=50"`
	PublicEmail string `json:"public_email" validate:"omitempty,email"`
	Website     string `json:"website" validate:"omitempty,url"`

	Province string `json:"province" validate:"max=80"`
	City     string `json:"city" validate:"max=80"`
	Address  string `json:"address" validate:"max=200"`

	SubcategoryIDs *[]uint `json:"subcategory_ids,omitempty"`
}

var allowedLogoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".svg":  true,
}

// HandleGetMyProfile returns the caller's provider profile, creating an
// empty hidden one on first access.
func HandleGetMyProfile(c *fiber.Ctx) error {
	provider, err := myProvider(c)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(provider)
}

// HandleUpdateMyProfile updates the descriptive profile fields and the
// subcategory links.
func HandleUpdateMyProfile(c *fiber.Ctx) error {
	provider, err := myProvider(c)
	if err != nil {
		return serverError(c, err)
	}

	var payload ProviderProfilePayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := providerValidate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	provider.DisplayName = strings.TrimSpace(payload.DisplayName)
	provider.LegalName = strings.TrimSpace(payload.LegalName)
	provider.TaxID = strings.TrimSpace(payload.TaxID)
	provider.Description = strings.TrimSpace(payload.Description)
	provider.Phone = strings.TrimSpace(payload.Phone)
	provider.Whatsapp = strings.TrimSpace(payload.Whatsapp)
	provider.PublicEmail = strings.TrimSpace(payload.PublicEmail)
	provider.Website = strings.TrimSpace(payload.Website)
	provider.Province = strings.TrimSpace(payload.Province)
	provider.City = strings.TrimSpace(payload.City)
	provider.Address = strings.TrimSpace(payload.Address)

	factory := repository.GetGlobalFactory()
	if err := factory.GetProviderRepository().Update(provider); err != nil {
		return serverError(c, err)
	}

	if payload.SubcategoryIDs != nil {
		subs, err := factory.GetSubcategoryRepository().GetByIDs(*payload.SubcategoryIDs)
		if err != nil {
			return serverError(c, err)
		}
		if len(subs) != len(*payload.SubcategoryIDs) {
			return badRequest(c, "unknown subcategory id")
		}
		if err := factory.GetProviderRepository().ReplaceSubcategories(provider, subs); err != nil {
			return serverError(c, err)
		}
	}

	updated, err := factory.GetProviderRepository().GetByID(provider.ID)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(updated)
}

// HandleUploadLogo stores the provider's logo in the media bucket and keeps
// the opaque object key on the profile.
func HandleUploadLogo(c *fiber.Ctx) error {
	provider, err := myProvider(c)
	if err != nil {
		return serverError(c, err)
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return badRequest(c, "logo file missing")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedLogoExtensions[ext] {
		return badRequest(c, "unsupported logo format")
	}

	cfg, err := storage.LoadConfig()
	if err != nil {
		return serverError(c, err)
	}
	if !cfg.IsEnabled() {
		return badRequest(c, "media storage is not configured")
	}

	client, err := storage.NewClient(cfg)
	if err != nil {
		return serverError(c, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverError(c, err)
	}
	defer file.Close()

	objectKey := cfg.LogoObjectKey(uuid.NewString(), ext, time.Now())
	result, err := client.Upload(c.Context(), objectKey, fileHeader.Header.Get(fiber.HeaderContentType), file, fileHeader.Size)
	if err != nil {
		return serverError(c, err)
	}

	previousKey := provider.LogoKey
	provider.LogoKey = result.ObjectKey
	if err := repository.GetGlobalFactory().GetProviderRepository().Update(provider); err != nil {
		return serverError(c, err)
	}

	// The replaced logo object is orphaned once the profile points elsewhere.
	if previousKey != "" && previousKey != result.ObjectKey {
		if err := client.Delete(c.Context(), previousKey); err != nil {
			log.Warnf("[Provider] could not delete replaced logo %s: %v", previousKey, err)
		}
	}

	return c.JSON(fiber.Map{
		"logo_key": result.ObjectKey,
		"logo_url": result.PublicURL,
	})
}
