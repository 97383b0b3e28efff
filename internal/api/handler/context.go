package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyhub/tutoring-gateway/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the RequireIdentity middleware
// and fails fast when it is missing (the route was mounted without it).
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
