package http

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/observability"
	apperrors "github.com/spec-kit/auth-service/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
// The request logger runs outermost so it records the status written by the error handler.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, dispatcher events.Dispatcher, timeout time.Duration) {
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics, dispatcher))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, dispatcher events.Dispatcher) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(routePath(c), c.Method(), domainErr.Code)

				errBody := fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}
				if len(domainErr.Details) > 0 {
					errBody["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
					requestID := observability.RequestIDFromContext(c)
					logger.Error("request failed",
						zap.String("request_id", requestID),
						zap.String("method", c.Method()),
						zap.String("path", c.Path()),
						zap.Error(err))
					reportUnhandled(c, dispatcher, logger, requestID, err)
				}

				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{
					"status":  false,
					"message": domainErr.Message,
					"error":   errBody,
				})
				err = nil
			}
		}()
		return c.Next()
	}
}

func reportUnhandled(c *fiber.Ctx, dispatcher events.Dispatcher, logger *zap.Logger, requestID string, cause error) {
	if dispatcher == nil {
		return
	}
	event := events.NewEvent(events.EventUnhandledError, "", events.UnhandledErrorPayload{
		RequestID: requestID,
		Path:      c.Path(),
		Method:    c.Method(),
		Error:     cause.Error(),
	})
	if err := dispatcher.Publish(context.WithoutCancel(c.UserContext()), event); err != nil {
		logger.Warn("publish unhandled error event failed", zap.Error(err))
	}
}

// routePath is the matched route pattern, keeping metric labels bounded.
func routePath(c *fiber.Ctx) string {
	if route := c.Route(); route != nil && route.Path != "" {
		return route.Path
	}
	return "unmatched"
}
