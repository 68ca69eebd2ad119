package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// TimerMetrics logs the duration of every request
func TimerMetrics(c *fiber.Ctx) error {
	startTime := time.Now()

	err := c.Next()

	duration := time.Since(startTime)
	log.Printf("[METRICS] %s %s - Status: %d - Duration: %dms",
		c.Method(), c.Path(), c.Response().StatusCode(), duration.Milliseconds())

	return err
}
