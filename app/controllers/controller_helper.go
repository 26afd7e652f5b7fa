package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/proveo-app/proveo/internal/pkg/cache"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": message})
}

func serverError(c *fiber.Ctx, err error) error {
	log.Errorf("[API] internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal", "message": "internal server error"})
}

// queryParams collects all query parameters preserving multi-values, for
// cache key fingerprinting.
func queryParams(c *fiber.Ctx) map[string][]string {
	params := map[string][]string{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		params[k] = append(params[k], string(value))
	})
	return params
}

// serveCachedJSON implements the read-through cache protocol: on hit the
// stored body is returned verbatim; on miss compute runs, the marshaled
// payload is stored under key with ttl, and served. Cache failures fall back
// to compute.
func serveCachedJSON(c *fiber.Ctx, key string, ttl time.Duration, compute func() (interface{}, error)) error {
	if body, err := cache.GetBytes(key); err == nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	} else if !cache.IsMiss(err) {
		log.Warnf("[Cache] read failed for %s: %v", key, err)
	}

	payload, err := compute()
	if err != nil {
		return serverError(c, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return serverError(c, err)
	}

	if err := cache.Set(key, body, ttl); err != nil {
		log.Warnf("[Cache] write failed for %s: %v", key, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
