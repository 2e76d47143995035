package api

import (
	"errors"
	"time"

	"github.com/ethpandaops/rfv/pkg/observability"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// setupMiddleware configures global middleware for the Fiber app
func setupMiddleware(app *fiber.App, log logrus.FieldLogger) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Every request and response carries X-Request-ID
	app.Use(requestid.New())

	app.Use(requestLogger(log))

	// Browsers read the export file name from Content-Disposition
	app.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID"},
	}))
}

// requestLogger logs one entry per request. Client errors log at warn,
// server errors at error, the rest at debug.
func requestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		entry := log.WithFields(logrus.Fields{
			"request_id": requestid.FromContext(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    time.Since(start),
		})

		switch {
		case status >= fiber.StatusInternalServerError:
			entry.WithError(err).Error("Request failed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Debug("Request served")
		}

		return err
	}
}

// errorHandler renders every error as {"error", "code"} JSON
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		observability.RecordError("api", "internal")
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}
