package billing

import (
	"strings"
	"time"

	"github.com/proveo-app/proveo/app/models"
)

// GatewayStatusToSubscriptionStatus maps a MercadoPago preapproval status
// to our subscription lifecycle. Unknown statuses stay PENDING so a later
// webhook can still promote the subscription.
func GatewayStatusToSubscriptionStatus(gatewayStatus string) string {
	switch strings.ToLower(strings.TrimSpace(gatewayStatus)) {
	case "authorized", "active":
		return models.SubscriptionStatusActive
	case "cancelled", "canceled":
		return models.SubscriptionStatusCanceled
	default:
		return models.SubscriptionStatusPending
	}
}

// PeriodForPlan computes the billing period granted by an activation.
// Months are approximated as 30 days, matching what the gateway charges on.
func PeriodForPlan(now time.Time, intervalMonths int) (start time.Time, end time.Time) {
	if intervalMonths < 1 {
		intervalMonths = 1
	}
	return now, now.Add(time.Duration(intervalMonths) * 30 * 24 * time.Hour)
}

// ApplyGatewayStatus updates the subscription fields driven by a gateway
// status change. It returns the columns that changed so callers can persist
// a minimal update.
func ApplyGatewayStatus(sub *models.Subscription, gatewayStatus string, intervalMonths int, now time.Time) []string {
	sub.GatewayStatus = strings.ToLower(strings.TrimSpace(gatewayStatus))
	sub.Status = GatewayStatusToSubscriptionStatus(gatewayStatus)

	columns := []string{"gateway_status", "status"}
	if sub.Status == models.SubscriptionStatusActive {
		start, end := PeriodForPlan(now, intervalMonths)
		sub.CurrentPeriodStart = &start
		sub.CurrentPeriodEnd = &end
		columns = append(columns, "current_period_start", "current_period_end")
	}
	return columns
}
