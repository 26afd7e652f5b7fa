package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/proveo-app/proveo/app/controllers"
	"github.com/proveo-app/proveo/internal/pkg/middleware"
)

type ApiRouter struct {
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{Max: 120}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "proveo api",
		})
	})

	v1 := api.Group("/v1")

	// Accounts
	auth := v1.Group("/auth")
	auth.Post("/register-admin", controllers.HandleRegisterAdmin)
	auth.Post("/register-provider", controllers.HandleRegisterProvider)
	auth.Post("/token", controllers.HandleLogin)
	auth.Get("/me", middleware.RequireAuth, controllers.HandleMe)

	// Public catalog
	v1.Get("/providers", controllers.HandleListProviders)
	v1.Get("/providers/facets", controllers.HandleCatalogFacets)
	v1.Get("/providers/location-facets", controllers.HandleLocationFacets)
	v1.Get("/providers/locations", controllers.HandleLocations)
	v1.Get("/providers/:slug", controllers.HandleProviderDetail)
	v1.Get("/ranking", controllers.HandleRanking)
	v1.Get("/categories", controllers.HandleListCategories)
	v1.Get("/subcategories", controllers.HandleListSubcategories)

	// Public reviews
	v1.Get("/providers/:slug/reviews", controllers.HandleListProviderReviews)
	v1.Post("/providers/:slug/reviews", controllers.HandlePublicReviewSubmit)

	// Public billing catalog and gateway callbacks
	v1.Get("/plans", controllers.HandleListPlans)
	v1.Post("/webhooks/mercadopago", controllers.HandleMercadoPagoWebhook)

	// Public ads
	v1.Get("/ads", controllers.HandleAdSlot)
	v1.Post("/ads/:id/click", controllers.HandleAdClick)
	v1.Post("/ad-requests", controllers.HandleCreateAdRequest)

	// Provider self-service
	provider := v1.Group("/provider", middleware.RequireAuth, middleware.RequireProvider)
	provider.Get("/me", controllers.HandleGetMyProfile)
	provider.Put("/me", controllers.HandleUpdateMyProfile)
	provider.Post("/me/logo", controllers.HandleUploadLogo)
	provider.Get("/subscriptions", controllers.HandleListMySubscriptions)
	provider.Post("/subscriptions", controllers.HandleStartSubscription)

	// Admin reviews (authenticated directory curators)
	admin := v1.Group("/admin", middleware.RequireAuth)
	admin.Get("/providers/:slug/review", controllers.HandleAdminReviewGet)
	admin.Post("/providers/:slug/review", controllers.HandleAdminReviewUpsert)

	// Staff backoffice
	staff := v1.Group("/staff", middleware.RequireAuth, middleware.RequireStaff)
	staff.Get("/reviews", controllers.HandleStaffReviewList)
	staff.Patch("/reviews/:id", controllers.HandleStaffReviewModerate)
	staff.Post("/maintenance/expire-subscriptions", controllers.HandleExpireSubscriptions)
}
