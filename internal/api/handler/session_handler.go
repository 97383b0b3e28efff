package handler

import (
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/studyhub/tutoring-gateway/internal/core/directory"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
	"github.com/studyhub/tutoring-gateway/internal/core/ports"
)

// SessionHandler serves the session directory.
type SessionHandler struct {
	directory ports.DirectoryService

	// The gateway serves a single UI, so the last applied query is the UI's
	// filter state. A filter change relative to it resets the page to 1.
	mu   sync.Mutex
	last directory.Query
}

func NewSessionHandler(dir ports.DirectoryService) *SessionHandler {
	return &SessionHandler{directory: dir, last: directory.DefaultQuery()}
}

// List handles GET /api/sessions.
//
// @Summary      Browse the session directory
// @Description  Filters, sorts and paginates all sessions (6 per page). Changing search, subject, level or sort resets the page to 1.
// @Tags         sessions
// @Produce      json
// @Param        search   query     string  false  "Case-insensitive match on title, subject, description and tutor name"
// @Param        subject  query     string  false  "Exact subject, or 'all'"
// @Param        level    query     string  false  "Exact level, or 'all'"
// @Param        sort     query     string  false  "upcoming (default), popular or newest"
// @Param        page     query     int     false  "1-based page number"
// @Success      200      {object}  listSessionsResponse
// @Failure      422      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	var req listSessionsQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	q, err := toDirectoryQuery(req)
	if err != nil {
		if errors.Is(err, directory.ErrUnknownSort) {
			return domain.NewValidationError(map[string]string{"sort": "must be one of: upcoming popular newest"})
		}
		return err
	}

	h.mu.Lock()
	q = q.Next(h.last)
	h.last = q
	h.mu.Unlock()

	view, err := h.directory.View(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListSessionsResponse(view, q))
}

// Refresh handles POST /api/sessions/refresh, the retry affordance after a
// failed load.
//
// @Summary      Reload sessions and enrollments from the backend
// @Tags         sessions
// @Success      204
// @Failure      503  {object}  errorResponse
// @Router       /api/sessions/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	if err := h.directory.Refresh(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Join handles POST /api/sessions/:id/join.
//
// @Summary      Join a session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  joinResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/sessions/{id}/join [post]
func (h *SessionHandler) Join(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}
	id := c.Param("id")
	if err := h.directory.Join(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, joinResponse{SessionID: id, Enrolled: true})
}

// Subjects handles GET /api/subjects.
//
// @Summary      Session counts per subject
// @Tags         sessions
// @Produce      json
// @Success      200  {array}   directory.SubjectCount
// @Failure      503  {object}  errorResponse
// @Router       /api/subjects [get]
func (h *SessionHandler) Subjects(c echo.Context) error {
	counts, err := h.directory.SubjectCounts(c.Request().Context())
	if err != nil {
		return err
	}
	if counts == nil {
		counts = []directory.SubjectCount{}
	}
	return c.JSON(http.StatusOK, counts)
}
