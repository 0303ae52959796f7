package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/signin-labs/account-service/pkg/util"
)

const loginRateWindow = time.Minute

// WindowCounter counts hits for a key within a fixed window.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// LoginRateLimiter caps login attempts per client IP in a fixed one-minute window.
// Counter failures let the request through.
func LoginRateLimiter(counter WindowCounter, limit int, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if counter == nil || limit <= 0 {
			return c.Next()
		}

		key := "ratelimit:login:" + c.IP()
		count, err := counter.IncrWindow(c.UserContext(), key, loginRateWindow)
		if err != nil {
			logger.Warn("login rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count > int64(limit) {
			c.Set(fiber.HeaderRetryAfter, "60")
			return apperrors.NewRateLimited(int(loginRateWindow / time.Second))
		}
		return c.Next()
	}
}
