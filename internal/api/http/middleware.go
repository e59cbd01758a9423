package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/savari-hq/savari/internal/observability"
	apperrors "github.com/savari-hq/savari/pkg/util"
)

// RegisterMiddlewares wires the global middleware chain: panic-safe error
// envelope, request timeout, and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(requestTimeoutMiddleware(timeout))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if timeout <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware recovers panics and renders every error as a
// uniform envelope: {"error": {"code", "message", "details"}}.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Path()))
				err = writeError(c, metrics, apperrors.ToDomainError(fiber.ErrInternalServerError))
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			domainErr := &apperrors.DomainError{
				Code:       codeForStatus(fiberErr.Code),
				Message:    fiberErr.Message,
				HTTPStatus: fiberErr.Code,
			}
			return writeError(c, metrics, domainErr)
		}

		domainErr := apperrors.ToDomainError(err)
		if domainErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.Error(err),
			)
		}
		return writeError(c, metrics, domainErr)
	}
}

func writeError(c *fiber.Ctx, metrics *observability.Metrics, domainErr *apperrors.DomainError) error {
	metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_FAILED"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "INVALID_STATE"
	default:
		return "INTERNAL_ERROR"
	}
}
