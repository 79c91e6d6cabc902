package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mediafeed/pkg/events"
)

// NewRequestTraceMiddleware stamps every request with a trace id and a
// correlation id, honoring ids supplied by upstream proxies. Published events
// pick them up through events.HeadersFromContext.
func NewRequestTraceMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := strings.TrimSpace(c.Get("X-Request-ID"))
		if traceID == "" {
			traceID = events.GenerateTraceID()
		}

		correlationID := strings.TrimSpace(c.Get("X-Correlation-ID"))
		if correlationID == "" {
			correlationID = events.GenerateCorrelationID()
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		userCtx = context.WithValue(userCtx, events.TraceIDContextKey, traceID)
		userCtx = context.WithValue(userCtx, events.CorrelationIDContextKey, correlationID)

		c.SetUserContext(userCtx)
		c.Set("X-Request-ID", traceID)

		return c.Next()
	}
}
