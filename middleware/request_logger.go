package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/shared"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request. Server errors are logged at error
// level, client errors at warn.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		// the error handler has not rendered the response yet
		if err != nil {
			status = shared.ErrorStatus(err)
		}

		entry := log.WithFields(log.Fields{
			"ip":       c.IP(),
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   status,
			"latency":  time.Since(start).String(),
			"user_id":  c.Locals(shared.UserID),
			"bytes_in": len(c.Body()),
		})

		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Debug("Request handled")
		}

		return err
	}
}
