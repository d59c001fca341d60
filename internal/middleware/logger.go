package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const slowRequest = 500 * time.Millisecond

// Logger logs only slow or failed requests; probes hit /health and
// /metrics constantly and successful ones are noise.
func Logger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		if status < fiber.StatusBadRequest && latency < slowRequest {
			return err
		}

		ev := log.Warn()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Msg("request completed")
		return err
	}
}
