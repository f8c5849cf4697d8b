// Package middleware wires the fiber request pipeline: context propagation,
// structured logging, metrics, tracing and per-route rate limits.
package middleware

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when the limit store (Redis)
// cannot be reached.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed rejects the request with 503.
	FailClosed
)

// Limit is a named request budget for one abuse-prone endpoint.
type Limit struct {
	Resource string
	Max      int
	Window   time.Duration
	Policy   FailPolicy
}

// Budgets per endpoint. Account creation is the tightest since every signup
// writes a row and sends a bcrypt round; reads get per-minute budgets.
var (
	SignupLimit           = Limit{Resource: "signup", Max: 3, Window: 10 * time.Minute}
	LoginLimit            = Limit{Resource: "login", Max: 10, Window: 5 * time.Minute}
	RestaurantSignupLimit = Limit{Resource: "restaurant_signup", Max: 3, Window: 10 * time.Minute}
	RestaurantLoginLimit  = Limit{Resource: "restaurant_login", Max: 10, Window: 5 * time.Minute}
	RestaurantSearchLimit = Limit{Resource: "restaurant_search", Max: 10, Window: time.Minute}
	CreatePostLimit       = Limit{Resource: "create_post", Max: 10, Window: 5 * time.Minute}
	CreateCommentLimit    = Limit{Resource: "create_comment", Max: 15, Window: time.Minute}
	UploadLimit           = Limit{Resource: "upload", Max: 10, Window: time.Minute}
)

// CheckRateLimit reports whether one more request fits the budget. Counting
// is a Redis INCR with the window applied on first touch. Limiting is
// disabled under APP_ENV test, development and stress so local workflows are
// never throttled.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, max int, window time.Duration) (bool, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	switch env {
	case "test", "development", "stress":
		return true, nil
	}

	if rdb == nil {
		return false, fmt.Errorf("rate limit store unavailable")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		rdb.Expire(ctx, key, window)
	}
	return cnt <= int64(max), nil
}

// RateLimit enforces the given budget, keyed by the authenticated account
// when present and by remote IP otherwise.
func RateLimit(rdb *redis.Client, l Limit) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id string
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		} else {
			id = fmt.Sprintf("ip:%s", c.IP())
		}

		resource := l.Resource
		if resource == "" {
			resource = c.Path()
		}

		allowed, err := CheckRateLimit(context.Background(), rdb, resource, id, l.Max, l.Window)
		if err != nil {
			if l.Policy == FailClosed {
				log.Printf("WARNING: rate limit store down, failing closed for %s (%s): %v", c.Path(), resource, err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
