package api

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
	"github.com/dmitrijs2005/useraccounts/internal/requestid"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// requestIDMiddleware takes the request id from the X-Request-ID header, or
// generates one, echoes it back and stores it in the request context so the
// credential client forwards it over gRPC.
func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = requestid.New()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, id)

		ctx := requestid.NewContext(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// loggerMiddleware writes one line per request. Handler errors are rendered
// here so the logged status is the one the client saw.
func loggerMiddleware(logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			args := []any{
				"method", req.Method,
				"uri", req.URL.Path,
				"status", res.Status,
				"latency", time.Since(start),
				"remote_ip", c.RealIP(),
				"request_id", requestid.FromContext(req.Context()),
			}
			if err != nil {
				args = append(args, "error", err.Error())
			}

			switch {
			case res.Status >= 500:
				logger.Error(req.Context(), "HTTP Request", args...)
			case res.Status >= 400:
				logger.Warn(req.Context(), "HTTP Request", args...)
			default:
				logger.Info(req.Context(), "HTTP Request", args...)
			}
			return nil
		}
	}
}

// authMiddleware resolves a Bearer session token to its user and stores the
// user in the echo context.
func authMiddleware(svc UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return common.ErrInvalidToken
			}

			u, err := svc.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(userContextKey, u)

			return next(c)
		}
	}
}
