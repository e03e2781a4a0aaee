package portal

import (
	"context"
	"errors"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medchain/portal/internal/guard"
	"github.com/medchain/portal/internal/observability"
	"github.com/medchain/portal/internal/session"
	apperrors "github.com/medchain/portal/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: timeouts, error handling,
// and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware maps DomainErrors to JSON responses. It also acts as
// the gateway-wide 401 interceptor: a verification failure from any upstream
// call drops the stored credential and sends the client back to login, no
// matter which route tripped it.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				metrics.RecordError(c.Path(), c.Method(), "HTTP_"+strconv.Itoa(fiberErr.Code))
				c.Status(fiberErr.Code)
				_ = c.JSON(fiber.Map{"error": fiber.Map{
					"code":    "REQUEST_FAILED",
					"message": fiberErr.Message,
				}})
				err = nil
				return
			}

			domainErr := apperrors.ToDomainError(err)
			metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

			if domainErr.Code == apperrors.CodeVerificationFailed {
				if mgr, ok := session.FromContext(c); ok {
					mgr.LogoutUser(c.UserContext())
				}
				logger.Info("session rejected upstream, forcing login",
					zap.String("path", c.Path()))
				err = c.Redirect(guard.LoginRoute, fiber.StatusFound)
				return
			}

			if domainErr.HTTPStatus >= 500 {
				logger.Error("request failed", zap.Error(domainErr))
			}
			c.Status(domainErr.HTTPStatus)
			_ = c.JSON(fiber.Map{"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}})
			err = nil
		}()
		return c.Next()
	}
}
