package devserver

import (
	"github.com/labstack/echo/v4"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

const ctxUserID = "user_id"

// requireSession validates the role's session cookie and injects the user id
// into the echo context.
func (s *server) requireSession(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName(role))
			if err != nil || cookie.Value == "" {
				return domain.ErrUnauthorized
			}
			claims, err := s.tokens.parse(cookie.Value)
			if err != nil || claims.Role != string(role) {
				return domain.ErrUnauthorized
			}
			c.Set(ctxUserID, claims.Subject)
			return next(c)
		}
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}
