package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/logger"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request ID in and out.
const RequestIDHeader = "X-Request-Id"

// RequestLogger attaches a request-scoped logger to the user context, echoes
// the request ID header and logs one line per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		ctx, rlog := logger.ContextWithLogger(c.UserContext(), c.Get(RequestIDHeader))
		c.SetUserContext(ctx)
		c.Set(RequestIDHeader, logger.RequestIDFromContext(ctx))

		chainErr := c.Next()
		if chainErr != nil {
			// Run the error handler now so the logged status is final.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		entry := rlog.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  status,
			"latency": time.Since(start),
			"ip":      c.IP(),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("request")
		case status >= fiber.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
		return nil
	}
}
