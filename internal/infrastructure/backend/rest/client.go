// Package rest talks to the tutoring backend over its /v1 REST API. The
// backend keeps the login in an HTTP-only cookie; Client holds it in a cookie
// jar for the lifetime of the process.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/studyhub/tutoring-gateway/internal/api/metrics"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements the auth, session, enrollment and profile ports.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client with its own cookie jar. A default timeout is applied
// when none is provided.
func New(cfg Config) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("rest: invalid base url %q: %w", cfg.BaseURL, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("rest: cookie jar: %w", err)
	}
	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{Timeout: timeout, Jar: jar},
	}, nil
}

// StatusError is a non-2xx answer from the backend. It unwraps to the domain
// error matching its status.
type StatusError struct {
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error { return e.kind }

type errorPayload struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

// conflictKinds maps the code of a 409 body to its domain error. Unknown or
// missing codes fall back to domain.ErrConflict.
var conflictKinds = map[string]error{
	"already_enrolled": domain.ErrAlreadyEnrolled,
	"session_full":     domain.ErrSessionFull,
}

func errorFromResponse(resp *http.Response) error {
	var payload errorPayload
	if resp.Body != nil {
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if len(payload.Fields) > 0 {
			return domain.NewValidationError(payload.Fields)
		}
	}

	kind := domain.ErrBackend
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = domain.ErrUnauthorized
	case http.StatusForbidden:
		kind = domain.ErrForbidden
	case http.StatusConflict:
		kind = domain.ErrConflict
		if k, ok := conflictKinds[payload.Code]; ok {
			kind = k
		}
	}
	return &StatusError{Status: resp.StatusCode, Message: payload.Error, kind: kind}
}

// do sends one request and decodes a JSON answer into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.BackendRequestDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		return fmt.Errorf("%s: %w: %v", op, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: malformed response: %v", op, domain.ErrBackend, err)
	}
	return nil
}

func rolePath(role domain.Role, suffix string) string {
	return "/v1/" + string(role) + suffix
}

// --- Auth ---

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerBody struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Bio        string   `json:"bio,omitempty"`
	Expertise  []string `json:"expertise,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
	Major      string   `json:"major,omitempty"`
	University string   `json:"university,omitempty"`
}

func (c *Client) Login(ctx context.Context, role domain.Role, creds domain.Credentials) (*domain.Identity, error) {
	var id domain.Identity
	err := c.do(ctx, string(role)+"_login", http.MethodPost, rolePath(role, "/auth/login"),
		loginBody{Email: creds.Email, Password: creds.Password}, &id)
	if errors.Is(err, domain.ErrUnauthorized) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	if err != nil {
		return nil, err
	}
	id.Role = role
	return &id, nil
}

func (c *Client) Register(ctx context.Context, role domain.Role, reg domain.Registration) (*domain.Identity, error) {
	var id domain.Identity
	err := c.do(ctx, string(role)+"_register", http.MethodPost, rolePath(role, "/auth/register"), registerBody{
		Name:       reg.Name,
		Email:      reg.Email,
		Password:   reg.Password,
		Bio:        reg.Bio,
		Expertise:  reg.Expertise,
		HourlyRate: reg.HourlyRate,
		Major:      reg.Major,
		University: reg.University,
	}, &id)
	if err != nil {
		return nil, err
	}
	id.Role = role
	return &id, nil
}

func (c *Client) Logout(ctx context.Context, role domain.Role) error {
	return c.do(ctx, string(role)+"_logout", http.MethodPost, rolePath(role, "/auth/logout"), nil, nil)
}

func (c *Client) WhoAmI(ctx context.Context, role domain.Role) (*domain.Identity, error) {
	var id domain.Identity
	if err := c.do(ctx, string(role)+"_me", http.MethodGet, rolePath(role, "/auth/me"), nil, &id); err != nil {
		return nil, err
	}
	id.Role = role
	return &id, nil
}

// UpdateProfile sends a PATCH with only the fields set in patch.
func (c *Client) UpdateProfile(ctx context.Context, role domain.Role, patch domain.ProfilePatch) (*domain.Identity, error) {
	var id domain.Identity
	if err := c.do(ctx, string(role)+"_update_profile", http.MethodPatch, rolePath(role, "/me"), patch, &id); err != nil {
		return nil, err
	}
	id.Role = role
	return &id, nil
}

// --- Sessions ---

func (c *Client) ListSessions(ctx context.Context) ([]domain.Session, error) {
	var out []domain.Session
	if err := c.do(ctx, "list_sessions", http.MethodGet, "/v1/tutor/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEnrolled(ctx context.Context) ([]domain.Session, error) {
	var out []domain.Session
	if err := c.do(ctx, "list_enrolled", http.MethodGet, "/v1/learner/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Join(ctx context.Context, sessionID string) error {
	err := c.do(ctx, "join_session", http.MethodPost, "/v1/learner/sessions/"+url.PathEscape(sessionID)+"/join", nil, nil)
	var se *StatusError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %v", domain.ErrSessionNotFound, err)
	}
	return err
}
