package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/cuentadante-api/pkg/logger"
)

// RequestLogger registra cada petición con zerolog: 5xx en error, 4xx en warn, resto en info.
func RequestLogger(log *logger.Logger) fiber.Handler {
	zl := log.Zerolog()
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// deja que el ErrorHandler fije el status antes de registrar
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = zl.Error()
		case status >= fiber.StatusBadRequest:
			ev = zl.Warn()
		default:
			ev = zl.Info()
		}
		if chainErr != nil {
			ev = ev.Err(chainErr)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Interface("request_id", c.Locals("requestid")).
			Int64("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}
