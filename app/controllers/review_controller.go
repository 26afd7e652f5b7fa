package controllers

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/app/repository"
	"github.com/proveo-app/proveo/internal/pkg/database"
	"github.com/proveo-app/proveo/internal/pkg/middleware"
	"github.com/proveo-app/proveo/internal/pkg/reviews"
)

var reviewValidate = validator.New()

// PublicReviewPayload is the anonymous submit body. Website is a honeypot;
// bots that fill it are rejected.
type PublicReviewPayload struct {
	Website string `json:"website"`

	Name  string `json:"name" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=50"`
	Org   string `json:"org" validate:"max=140"`

	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// AdminReviewPayload is the authenticated upsert body.
type AdminReviewPayload struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ModerationPayload sets a review's moderation status.
type ModerationPayload struct {
	Status  string  `json:"status" validate:"required,oneof=PUBLISHED PENDING HIDDEN"`
	Comment *string `json:"comment,omitempty"`
}

// PublicReviewItem is the public shape of a published review.
type PublicReviewItem struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
	Author    string `json:"author"`
}

func publicAuthor(r *models.Review) string {
	if !r.IsAnonymous() {
		return "Administrador verificado"
	}
	if r.ReviewerName != "" {
		return r.ReviewerName
	}
	return "Cliente"
}

func recomputeRating(providerID uint) {
	svc := reviews.NewServiceFromDB(database.GetDB())
	if err := svc.RecomputeProviderRating(providerID); err != nil {
		log.Errorf("[Reviews] rating recompute failed for provider %d: %v", providerID, err)
	}
}

// HandleListProviderReviews serves the PUBLISHED reviews of a visible
// provider, newest first.
func HandleListProviderReviews(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))

	factory := repository.GetGlobalFactory()
	provider, err := factory.GetProviderRepository().GetVisibleBySlug(slug)
	if err != nil {
		return notFound(c, "provider not found")
	}

	list, err := factory.GetReviewRepository().ListPublishedByProvider(provider.ID)
	if err != nil {
		return serverError(c, err)
	}

	items := make([]PublicReviewItem, 0, len(list))
	for i := range list {
		items = append(items, PublicReviewItem{
			Rating:    list[i].Rating,
			Comment:   list[i].Comment,
			CreatedAt: list[i].CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Author:    publicAuthor(&list[i]),
		})
	}
	return c.JSON(fiber.Map{"results": items})
}

// HandlePublicReviewSubmit accepts an anonymous review for a visible
// provider. A repeat submission from the same email updates the earlier
// review instead of creating a second one; the review always lands PENDING.
func HandlePublicReviewSubmit(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))

	factory := repository.GetGlobalFactory()
	provider, err := factory.GetProviderRepository().GetVisibleBySlug(slug)
	if err != nil {
		return notFound(c, "provider not found")
	}

	var payload PublicReviewPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}
	if strings.TrimSpace(payload.Website) != "" {
		return badRequest(c, "invalid payload")
	}
	if err := reviewValidate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	review := &models.Review{
		ProviderID:    provider.ID,
		ReviewerName:  strings.TrimSpace(payload.Name),
		ReviewerEmail: payload.Email,
		ReviewerPhone: strings.TrimSpace(payload.Phone),
		ReviewerOrg:   strings.TrimSpace(payload.Org),
		Rating:        payload.Rating,
		Comment:       strings.TrimSpace(payload.Comment),
		Status:        models.ReviewStatusPending,
		Source:        models.ReviewSourcePublic,
	}
	if err := factory.GetReviewRepository().UpsertAnonymous(review); err != nil {
		return serverError(c, err)
	}

	recomputeRating(provider.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "status": review.Status})
}

// HandleAdminReviewGet returns the caller's own review for a provider.
func HandleAdminReviewGet(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	userID := middleware.UserID(c)

	factory := repository.GetGlobalFactory()
	provider, err := factory.GetProviderRepository().GetVisibleBySlug(slug)
	if err != nil {
		return notFound(c, "provider not found")
	}

	review, err := factory.GetReviewRepository().GetByProviderReviewer(provider.ID, userID)
	if err != nil {
		return notFound(c, "no review yet")
	}
	return c.JSON(review)
}

// HandleAdminReviewUpsert creates or replaces the caller's review for a
// visible provider. The review lands PENDING regardless of its prior status.
func HandleAdminReviewUpsert(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	userID := middleware.UserID(c)

	factory := repository.GetGlobalFactory()
	provider, err := factory.GetProviderRepository().GetVisibleBySlug(slug)
	if err != nil {
		return notFound(c, "provider not found")
	}

	var payload AdminReviewPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := reviewValidate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	// Mirror the token principal so the reviewer foreign key resolves.
	err = factory.GetUserRepository().Ensure(&models.User{
		ID:    userID,
		Email: middleware.UserEmail(c),
		Role:  middleware.UserRole(c),
	})
	if err != nil {
		return serverError(c, err)
	}

	review := &models.Review{
		ProviderID: provider.ID,
		ReviewerID: &userID,
		Rating:     payload.Rating,
		Comment:    strings.TrimSpace(payload.Comment),
		Status:     models.ReviewStatusPending,
		Source:     models.ReviewSourceAdmin,
	}
	if err := factory.GetReviewRepository().UpsertByReviewer(review); err != nil {
		return serverError(c, err)
	}

	recomputeRating(provider.ID)

	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleStaffReviewList lists reviews by moderation status, newest first.
func HandleStaffReviewList(c *fiber.Ctx) error {
	status := strings.ToUpper(strings.TrimSpace(c.Query("status", models.ReviewStatusPending)))
	switch status {
	case models.ReviewStatusPublished, models.ReviewStatusPending, models.ReviewStatusHidden:
	default:
		return badRequest(c, "status must be PUBLISHED, PENDING or HIDDEN")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	const pageSize = 50

	list, err := repository.GetGlobalFactory().GetReviewRepository().
		ListByStatus(status, (page-1)*pageSize, pageSize)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"results": list, "page": page, "page_size": pageSize})
}

// HandleStaffReviewModerate updates a review's status and optionally its
// comment, then recomputes the provider's rating.
func HandleStaffReviewModerate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badRequest(c, "invalid review id")
	}

	factory := repository.GetGlobalFactory()
	review, err := factory.GetReviewRepository().GetByID(uint(id))
	if err != nil {
		return notFound(c, "review not found")
	}

	var payload ModerationPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := reviewValidate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	review.Status = payload.Status
	if payload.Comment != nil {
		review.Comment = strings.TrimSpace(*payload.Comment)
	}
	if err := factory.GetReviewRepository().Update(review); err != nil {
		return serverError(c, err)
	}

	recomputeRating(review.ProviderID)

	return c.JSON(review)
}
