package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// requestLogger resolves handler errors itself so that the logged status is
// the one the client receives.
func (s *HTTPServer) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	if chainErr := c.Next(); chainErr != nil {
		if err := s.errorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.logger.Info(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start).String(),
	)
	return nil
}
