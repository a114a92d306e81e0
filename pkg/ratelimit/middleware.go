package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Middleware limits requests per client IP under the given route label.
// onReject, when set, is called for every rejected request.
func Middleware(l Limiter, route string, limit int, window time.Duration, onReject func(route string)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l == nil || limit <= 0 {
			return c.Next()
		}
		key := route + ":ip:" + c.IP()
		d := l.Allow(c.UserContext(), key, limit, window)
		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		remaining := limit - d.Count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !d.Allowed {
			if onReject != nil {
				onReject(route)
			}
			retry := int(time.Until(d.WindowEnd).Seconds()) + 1
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests"})
		}
		return c.Next()
	}
}
