package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyhub/tutoring-gateway/internal/core/ports"
)

// AuthHandler exposes the auth store to the UI.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// State handles GET /api/auth/state. It never blocks, so the UI can show a
// loading screen while the store is still initializing.
//
// @Summary      Current authentication state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authStateResponse
// @Router       /api/auth/state [get]
func (h *AuthHandler) State(c echo.Context) error {
	resp := authStateResponse{State: h.auth.State()}
	if id, ok := h.auth.Current(); ok {
		resp.User = id
	}
	return c.JSON(http.StatusOK, resp)
}

// Login signs the gateway in.
//
// @Summary      Login
// @Description  Without a role the learner login is tried first, then the tutor one.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authStateResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	creds, role := toCredentials(req)
	id, err := h.auth.Login(c.Request().Context(), creds, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authStateResponse{State: h.auth.State(), User: id})
}

// Register creates an account and signs it in.
//
// @Summary      Register a learner or tutor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authStateResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.auth.Register(c.Request().Context(), toRegistration(req), domainRole(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authStateResponse{State: h.auth.State(), User: id})
}

// Logout always succeeds; the backend session is ended on a best-effort basis.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.auth.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
