package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// Context keys set by RequireIdentity.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// ReadyWaiter blocks until the auth store has finished its startup check.
type ReadyWaiter interface {
	WaitReady(ctx context.Context) error
}

// IdentitySource returns the identity the gateway is signed in as.
type IdentitySource interface {
	Current() (*domain.Identity, bool)
}

// RequireReady holds requests until the auth store has resolved its persisted
// identity, so no protected route ever sees the Initializing state. Requests
// that wait longer than timeout get 503.
func RequireReady(store ReadyWaiter, timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			if err := store.WaitReady(ctx); err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "authentication still initializing")
				}
				return err
			}
			return next(c)
		}
	}
}

// RequireIdentity rejects anonymous requests and injects the caller's id and
// role into the echo context.
func RequireIdentity(source IdentitySource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := source.Current()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			c.Set(CtxUserID, ident.ID)
			c.Set(CtxRole, string(ident.Role))
			return next(c)
		}
	}
}
