package devserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=6"`
	Bio        string   `json:"bio"`
	Expertise  []string `json:"expertise"`
	HourlyRate *float64 `json:"hourlyRate" validate:"omitempty,gte=0"`
	Major      string   `json:"major"`
	University string   `json:"university"`
}

type profileRequest struct {
	Name       *string   `json:"name" validate:"omitempty,min=1"`
	Email      *string   `json:"email" validate:"omitempty,email"`
	Avatar     *string   `json:"avatar"`
	Bio        *string   `json:"bio"`
	Expertise  *[]string `json:"expertise"`
	HourlyRate *float64  `json:"hourlyRate" validate:"omitempty,gte=0"`
	Major      *string   `json:"major"`
	University *string   `json:"university"`
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

func (s *server) login(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		id, err := s.store.Authenticate(role, domain.Credentials{Email: req.Email, Password: req.Password})
		if err != nil {
			return err
		}
		return s.startSession(c, http.StatusOK, id)
	}
}

func (s *server) register(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req registerRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		id, err := s.store.Register(role, domain.Registration{
			Name:       req.Name,
			Email:      req.Email,
			Password:   req.Password,
			Bio:        req.Bio,
			Expertise:  req.Expertise,
			HourlyRate: req.HourlyRate,
			Major:      req.Major,
			University: req.University,
		})
		if err != nil {
			return err
		}
		s.log.Info().Str("user_id", id.ID).Str("role", string(role)).Msg("account registered")
		return s.startSession(c, http.StatusCreated, id)
	}
}

func (s *server) logout(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetCookie(s.tokens.clearCookie(role))
		return c.NoContent(http.StatusNoContent)
	}
}

func (s *server) me(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := s.store.Identity(role, userID(c))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, id)
	}
}

func (s *server) updateProfile(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req profileRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		id, err := s.store.UpdateProfile(role, userID(c), domain.ProfilePatch{
			Name:       req.Name,
			Email:      req.Email,
			Avatar:     req.Avatar,
			Bio:        req.Bio,
			Expertise:  req.Expertise,
			HourlyRate: req.HourlyRate,
			Major:      req.Major,
			University: req.University,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, id)
	}
}

func (s *server) listSessions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Sessions())
}

func (s *server) enrolledSessions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Enrolled(userID(c)))
}

func (s *server) join(c echo.Context) error {
	if err := s.store.Enroll(c.Param("id"), userID(c)); err != nil {
		return err
	}
	s.log.Info().Str("session_id", c.Param("id")).Str("user_id", userID(c)).Msg("learner joined session")
	return c.NoContent(http.StatusNoContent)
}

func (s *server) startSession(c echo.Context, status int, id *domain.Identity) error {
	token, expires, err := s.tokens.issue(id, s.now())
	if err != nil {
		return err
	}
	c.SetCookie(s.tokens.cookie(id.Role, token, expires))
	return c.JSON(status, id)
}
