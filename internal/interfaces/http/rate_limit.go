package http

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/medicare-console/internal/application/dto"
)

const limiterCacheSize = 4096

// LoginLimiter limita los intentos de login por IP (perMinute por minuto, con
// ráfaga igual al límite). perMinute <= 0 desactiva el límite.
func LoginLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	limiters, err := lru.New[string, *rate.Limiter](limiterCacheSize)
	if err != nil {
		panic(fmt.Sprintf("http: login limiter: %v", err))
	}
	var mu sync.Mutex
	every := rate.Limit(float64(perMinute) / 60)

	return func(c *fiber.Ctx) error {
		mu.Lock()
		lim, ok := limiters.Get(c.IP())
		if !ok {
			lim = rate.NewLimiter(every, perMinute)
			limiters.Add(c.IP(), lim)
		}
		mu.Unlock()

		if !lim.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many login attempts, please try again later",
			})
		}
		return c.Next()
	}
}
