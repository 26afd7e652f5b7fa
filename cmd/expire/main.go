package main

import (
	"log"

	"github.com/proveo-app/proveo/internal/pkg/billing"
	"github.com/proveo-app/proveo/internal/pkg/cache"
	"github.com/proveo-app/proveo/internal/pkg/database"
	"github.com/proveo-app/proveo/internal/pkg/env"
	"github.com/proveo-app/proveo/internal/pkg/metrics/counter"
)

// Periodic maintenance pass, intended for cron. Expires overdue
// subscriptions, recomputes the affected providers' visibility, and flushes
// buffered ad counters.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	result, err := billing.NewServiceFromDB(database.GetDB()).ExpireDueSubscriptions()
	if err != nil {
		log.Fatalf("subscription expiry sweep failed: %v", err)
	}
	log.Printf("expiry sweep done: expired=%d providers_updated=%d",
		result.ExpiredCount, result.ProvidersUpdatedCount)

	if err := counter.FlushAll(); err != nil {
		log.Fatalf("ad counter flush failed: %v", err)
	}
	log.Println("ad counters flushed")
}
