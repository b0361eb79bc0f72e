package server

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/safar/teebay/internal/auth"
)

func registerMiddlewares(e *echo.Echo, allowOrigins []string, issuer *auth.Issuer, logger *slog.Logger) {
	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Use(Slog(logger))
	e.Use(Identity(issuer, logger))
}

// Slog logs one line per request.
func Slog(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.InfoContext(c.Request().Context(), "http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"ip", c.RealIP(),
			)
			return nil
		}
	}
}

// Identity attaches the bearer token's user to the request context. A
// missing or invalid token leaves the caller anonymous; resolvers that need
// a user reject anonymous callers themselves.
func Identity(issuer *auth.Issuer, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return next(c)
			}

			userID, err := issuer.Verify(token)
			if err != nil {
				logger.WarnContext(c.Request().Context(), "ignoring invalid token",
					"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
					"error", err,
				)
				return next(c)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithUserID(req.Context(), userID)))
			return next(c)
		}
	}
}
