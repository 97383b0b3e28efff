// Package devserver serves an in-memory tutoring backend over the same REST
// contract the gateway consumes, so the gateway can run and be tested
// end to end without the real service.
package devserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/studyhub/tutoring-gateway/internal/api"
	"github.com/studyhub/tutoring-gateway/internal/api/middleware"
	"github.com/studyhub/tutoring-gateway/internal/api/validation"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
	"github.com/studyhub/tutoring-gateway/internal/infrastructure/backend/memory"
)

// Config controls session token issuing.
type Config struct {
	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool
}

type server struct {
	store  *memory.Store
	tokens tokens
	log    zerolog.Logger
	now    func() time.Time
}

// New builds the echo instance with every /v1 route registered.
func New(store *memory.Store, cfg Config, log zerolog.Logger) *echo.Echo {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	s := &server{
		store:  store,
		tokens: tokens{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL, secure: cfg.CookieSecure},
		log:    log,
		now:    time.Now,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := e.Group("/v1")
	for _, role := range []domain.Role{domain.RoleLearner, domain.RoleTutor} {
		authed := s.requireSession(role)
		v1.POST("/"+string(role)+"/auth/login", s.login(role))
		v1.POST("/"+string(role)+"/auth/register", s.register(role))
		v1.POST("/"+string(role)+"/auth/logout", s.logout(role))
		v1.GET("/"+string(role)+"/auth/me", s.me(role), authed)
		v1.PATCH("/"+string(role)+"/me", s.updateProfile(role), authed)
		v1.PUT("/"+string(role)+"/me", s.updateProfile(role), authed)
	}

	// Directory source: the full list, readable without a session.
	v1.GET("/tutor/sessions", s.listSessions)

	learnerOnly := s.requireSession(domain.RoleLearner)
	v1.GET("/learner/sessions", s.enrolledSessions, learnerOnly)
	v1.POST("/learner/sessions/:id/join", s.join, learnerOnly)

	return e
}
