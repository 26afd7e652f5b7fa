package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/app/repository"
	"github.com/proveo-app/proveo/internal/pkg/billing"
	"github.com/proveo-app/proveo/internal/pkg/database"
	"github.com/proveo-app/proveo/internal/pkg/env"
	"github.com/proveo-app/proveo/internal/pkg/mercadopago"
	"github.com/proveo-app/proveo/internal/pkg/middleware"
)

var billingValidate = validator.New()

// SubscriptionStartPayload selects the plan to subscribe to.
type SubscriptionStartPayload struct {
	PlanCode string `json:"plan_code" validate:"required,max=40"`
}

// SubscriptionItem is the subscription shape returned to providers.
type SubscriptionItem struct {
	models.Subscription
	PlanCode       string `json:"plan_code"`
	PlanName       string `json:"plan_name"`
	Tier           int    `json:"tier"`
	IntervalMonths int    `json:"interval_months"`
	CheckoutURL    string `json:"checkout_url"`
}

func toSubscriptionItem(sub *models.Subscription) SubscriptionItem {
	return SubscriptionItem{
		Subscription:   *sub,
		PlanCode:       sub.Plan.Code,
		PlanName:       sub.Plan.Name,
		Tier:           sub.Plan.Tier,
		IntervalMonths: sub.Plan.IntervalMonths,
		CheckoutURL:    sub.GatewayCheckoutURL,
	}
}

func recomputeVisibility(providerID uint) {
	svc := billing.NewServiceFromDB(database.GetDB())
	if err := svc.RecomputeProviderVisibility(providerID); err != nil {
		log.Errorf("[Billing] visibility recompute failed for provider %d: %v", providerID, err)
	}
}

func myProvider(c *fiber.Ctx) (*models.Provider, error) {
	user := &models.User{
		ID:    middleware.UserID(c),
		Email: middleware.UserEmail(c),
		Role:  middleware.UserRole(c),
	}
	return repository.GetGlobalFactory().GetProviderRepository().GetOrCreateByUser(user)
}

// HandleListPlans serves the active plan catalog, cheapest tiers first.
func HandleListPlans(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalFactory().GetPlanRepository().GetActive()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"results": plans})
}

// HandleListMySubscriptions lists the caller's subscriptions, newest first.
func HandleListMySubscriptions(c *fiber.Ctx) error {
	provider, err := myProvider(c)
	if err != nil {
		return serverError(c, err)
	}

	subs, err := repository.GetGlobalFactory().GetSubscriptionRepository().ListByProvider(provider.ID)
	if err != nil {
		return serverError(c, err)
	}

	items := make([]SubscriptionItem, 0, len(subs))
	for i := range subs {
		items = append(items, toSubscriptionItem(&subs[i]))
	}
	return c.JSON(fiber.Map{"results": items})
}

// HandleStartSubscription starts (or resumes) a subscription to a plan. An
// already ACTIVE subscription for the plan is returned as-is; a PENDING one
// is reused. When MercadoPago is configured a preapproval is created and the
// checkout URL stored; a gateway failure keeps the subscription PENDING and
// surfaces as 400.
func HandleStartSubscription(c *fiber.Ctx) error {
	provider, err := myProvider(c)
	if err != nil {
		return serverError(c, err)
	}

	var payload SubscriptionStartPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := billingValidate.Struct(&payload); err != nil {
		return badRequest(c, err.Error())
	}

	factory := repository.GetGlobalFactory()
	plan, err := factory.GetPlanRepository().GetActiveByCode(strings.TrimSpace(payload.PlanCode))
	if err != nil {
		return badRequest(c, "plan not available")
	}

	subRepo := factory.GetSubscriptionRepository()
	sub, err := subRepo.GetOpenByProviderPlan(provider.ID, plan.ID)
	if err == nil && sub.Status == models.SubscriptionStatusActive {
		sub.Plan = *plan
		return c.JSON(toSubscriptionItem(sub))
	}
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return serverError(c, err)
		}
		sub = &models.Subscription{
			ProviderID: provider.ID,
			PlanID:     plan.ID,
			Status:     models.SubscriptionStatusPending,
			Gateway:    models.GatewayManual,
		}
		if err := subRepo.Create(sub); err != nil {
			return serverError(c, err)
		}
	}
	sub.Plan = *plan

	mp := mercadopago.NewClientFromEnv()
	backURL := strings.TrimSpace(env.GetEnv("MP_BACK_URL", ""))
	if mp.IsConfigured() && backURL != "" {
		preapproval, err := mp.CreatePreapproval(c.Context(), mercadopago.PreapprovalRequest{
			PayerEmail:        middleware.UserEmail(c),
			Reason:            fmt.Sprintf("%s - Directorio Proveedores", plan.Name),
			BackURL:           backURL,
			ExternalReference: fmt.Sprintf("sub:%d", sub.ID),
			AutoRecurring: mercadopago.AutoRecurring{
				CurrencyID:        plan.Currency,
				TransactionAmount: float64(plan.PriceCents) / 100.0,
				Frequency:         plan.IntervalMonths,
				FrequencyType:     "months",
			},
		})
		if err != nil {
			log.Warnf("[Billing] preapproval creation failed: %v", err)
			return badRequest(c, err.Error())
		}

		sub.Gateway = models.GatewayMercadoPago
		sub.GatewaySubscriptionID = preapproval.ID
		sub.GatewayCheckoutURL = preapproval.CheckoutURL()
		sub.GatewayStatus = preapproval.Status
		if err := subRepo.Update(sub); err != nil {
			return serverError(c, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(toSubscriptionItem(sub))
}

// HandleMercadoPagoWebhook processes a preapproval status notification. The
// preapproval id may arrive in the JSON body (data.id or id) or as a query
// parameter; the current status is always re-fetched from the gateway rather
// than trusted from the delivery.
func HandleMercadoPagoWebhook(c *fiber.Ctx) error {
	var body struct {
		ID   interface{} `json:"id"`
		Data struct {
			ID interface{} `json:"id"`
		} `json:"data"`
	}
	_ = c.BodyParser(&body)

	mpID := webhookID(body.Data.ID)
	if mpID == "" {
		mpID = webhookID(body.ID)
	}
	if mpID == "" {
		mpID = strings.TrimSpace(c.Query("data.id"))
	}
	if mpID == "" {
		mpID = strings.TrimSpace(c.Query("id"))
	}
	if mpID == "" {
		return badRequest(c, "missing preapproval id")
	}

	mp := mercadopago.NewClientFromEnv()
	if !mp.IsConfigured() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal", "message": "gateway token not configured",
		})
	}

	preapproval, err := mp.GetPreapproval(c.Context(), mpID)
	if err != nil {
		log.Warnf("[Billing] preapproval fetch failed for %s: %v", mpID, err)
		return badRequest(c, "preapproval lookup failed")
	}

	factory := repository.GetGlobalFactory()
	sub, err := factory.GetSubscriptionRepository().GetByGatewayID(mpID)
	if err != nil {
		return notFound(c, "subscription not found")
	}

	billing.ApplyGatewayStatus(sub, preapproval.Status, sub.Plan.IntervalMonths, time.Now())
	if err := factory.GetSubscriptionRepository().Update(sub); err != nil {
		return serverError(c, err)
	}

	recomputeVisibility(sub.ProviderID)

	return c.JSON(fiber.Map{"ok": true})
}

// webhookID normalizes the loosely-typed id field MercadoPago sends (string
// or number).
func webhookID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return fmt.Sprintf("%.0f", id)
	default:
		return ""
	}
}

// HandleExpireSubscriptions runs the subscription expiry sweep on demand.
func HandleExpireSubscriptions(c *fiber.Ctx) error {
	result, err := billing.NewServiceFromDB(database.GetDB()).ExpireDueSubscriptions()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(result)
}
