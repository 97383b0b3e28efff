package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyhub/tutoring-gateway/internal/core/ports"
)

// ProfileHandler handles profile edits of the signed-in user.
type ProfileHandler struct {
	profile ports.ProfileService
}

func NewProfileHandler(profile ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// Update handles PATCH /api/me. Only the fields present in the body change.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Identity
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/me [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.profile.Update(c.Request().Context(), toProfilePatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}
