package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyhub/tutoring-gateway/internal/api"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
	"github.com/studyhub/tutoring-gateway/internal/core/service"
	"github.com/studyhub/tutoring-gateway/internal/infrastructure/backend/memory"
	"github.com/studyhub/tutoring-gateway/internal/infrastructure/projection"
)

type gateway struct {
	t    *testing.T
	e    *echo.Echo
	auth *service.AuthStore
}

func newGateway(t *testing.T, initialize bool, readyTimeout time.Duration) *gateway {
	t.Helper()

	store := memory.NewStore(bcrypt.MinCost)
	if err := store.SeedDemo(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	backend := memory.NewBackend(store)
	log := zerolog.Nop()

	auth := service.NewAuthStore(backend, projection.NewMemoryStore(), log)
	dir := service.NewDirectoryService(backend, backend, auth, log)
	auth.OnChange(func(domain.AuthState) { dir.Reset() })
	if initialize {
		auth.Init(context.Background())
	}

	e := api.NewRouter(api.Dependencies{
		Auth:         auth,
		Directory:    dir,
		Profile:      service.NewProfileService(backend, auth, log),
		Projections:  projection.NewMemoryStore(),
		Log:          log,
		ReadyTimeout: readyTimeout,
		Registry:     prometheus.NewRegistry(),
	})
	return &gateway{t: t, e: e, auth: auth}
}

func (g *gateway) do(method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	g.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	g.e.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func (g *gateway) expect(method, target, body string, status int) map[string]any {
	g.t.Helper()
	rec, out := g.do(method, target, body)
	if rec.Code != status {
		g.t.Fatalf("%s %s: expected %d, got %d: %s", method, target, status, rec.Code, rec.Body.String())
	}
	return out
}

func (g *gateway) login(role string) {
	g.t.Helper()
	email := memory.DemoLearnerEmail
	if role == "tutor" {
		email = memory.DemoTutorEmail
	}
	body := `{"email":"` + email + `","password":"` + memory.DemoPassword + `"`
	if role != "" {
		body += `,"role":"` + role + `"`
	}
	g.expect(http.MethodPost, "/api/auth/login", body+"}", http.StatusOK)
}

func firstItem(t *testing.T, page map[string]any) map[string]any {
	t.Helper()
	items, _ := page["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected exactly one item, got %d", len(items))
	}
	return items[0].(map[string]any)
}

func TestRouter_Probes(t *testing.T) {
	g := newGateway(t, true, time.Second)

	g.expect(http.MethodGet, "/health", "", http.StatusOK)
	ready := g.expect(http.MethodGet, "/health/ready", "", http.StatusOK)
	if ready["status"] != "ok" {
		t.Fatalf("unexpected readiness: %+v", ready)
	}

	state := g.expect(http.MethodGet, "/api/auth/state", "", http.StatusOK)
	if state["state"] != "anonymous" {
		t.Fatalf("expected anonymous after init, got %+v", state)
	}

	rec, _ := g.do(http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}

func TestRouter_LearnerJoinFlow(t *testing.T) {
	g := newGateway(t, true, time.Second)
	g.login("")

	state := g.expect(http.MethodGet, "/api/auth/state", "", http.StatusOK)
	user, _ := state["user"].(map[string]any)
	if state["state"] != "authenticated" || user["role"] != "learner" {
		t.Fatalf("expected learner login via fallback order, got %+v", state)
	}

	all := g.expect(http.MethodGet, "/api/sessions", "", http.StatusOK)
	if all["perPage"].(float64) != 6 || all["total"].(float64) < 7 {
		t.Fatalf("unexpected directory page: %+v", all)
	}

	full := firstItem(t, g.expect(http.MethodGet, "/api/sessions?search=group+theory", "", http.StatusOK))
	if full["availabilityLabel"] != "Full" || full["canJoin"] != false {
		t.Fatalf("expected full session, got %+v", full)
	}
	out := g.expect(http.MethodPost, "/api/sessions/"+full["id"].(string)+"/join", "", http.StatusConflict)
	if out["error"] == "" {
		t.Fatal("expected error envelope")
	}

	urgent := firstItem(t, g.expect(http.MethodGet, "/api/sessions?search=linear", "", http.StatusOK))
	if urgent["availabilityLabel"] != "2 spots left!" {
		t.Fatalf("expected urgent session, got %+v", urgent)
	}
	id := urgent["id"].(string)

	joined := g.expect(http.MethodPost, "/api/sessions/"+id+"/join", "", http.StatusOK)
	if joined["sessionId"] != id || joined["enrolled"] != true {
		t.Fatalf("unexpected join response: %+v", joined)
	}

	after := firstItem(t, g.expect(http.MethodGet, "/api/sessions?search=linear", "", http.StatusOK))
	if after["enrolled"] != true || after["canJoin"] != false || after["availabilityLabel"] != "1 spot left!" {
		t.Fatalf("join not reflected: %+v", after)
	}
	g.expect(http.MethodPost, "/api/sessions/"+id+"/join", "", http.StatusConflict)

	g.expect(http.MethodPost, "/api/sessions/refresh", "", http.StatusNoContent)
	refreshed := firstItem(t, g.expect(http.MethodGet, "/api/sessions?search=linear", "", http.StatusOK))
	if refreshed["enrolled"] != true {
		t.Fatalf("enrollment lost after refresh: %+v", refreshed)
	}

	g.expect(http.MethodPost, "/api/sessions/does-not-exist/join", "", http.StatusNotFound)
}

func TestRouter_JoinRequiresLearner(t *testing.T) {
	g := newGateway(t, true, time.Second)

	g.expect(http.MethodPost, "/api/sessions/any/join", "", http.StatusUnauthorized)

	g.login("tutor")
	g.expect(http.MethodPost, "/api/sessions/any/join", "", http.StatusForbidden)
}

func TestRouter_ProfileUpdate(t *testing.T) {
	g := newGateway(t, true, time.Second)
	g.expect(http.MethodPatch, "/api/me", `{"bio":"x"}`, http.StatusUnauthorized)

	g.login("tutor")
	updated := g.expect(http.MethodPatch, "/api/me", `{"bio":"Teaches compilers"}`, http.StatusOK)
	if updated["bio"] != "Teaches compilers" || updated["role"] != "tutor" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	state := g.expect(http.MethodGet, "/api/auth/state", "", http.StatusOK)
	if user := state["user"].(map[string]any); user["bio"] != "Teaches compilers" {
		t.Fatalf("auth store not updated: %+v", user)
	}
}

func TestRouter_LoginErrors(t *testing.T) {
	g := newGateway(t, true, time.Second)

	out := g.expect(http.MethodPost, "/api/auth/login", `{"email":"bad"}`, http.StatusUnprocessableEntity)
	fields, _ := out["fields"].(map[string]any)
	if fields["email"] == nil || fields["password"] == nil {
		t.Fatalf("expected field errors, got %+v", out)
	}

	g.expect(http.MethodPost, "/api/auth/login",
		`{"email":"`+memory.DemoLearnerEmail+`","password":"wrong-password"}`, http.StatusUnauthorized)
}

func TestRouter_RegisterAndLogout(t *testing.T) {
	g := newGateway(t, true, time.Second)

	body := `{"role":"learner","name":"Lin","email":"lin@example.com","password":"secret1","major":"Physics"}`
	created := g.expect(http.MethodPost, "/api/auth/register", body, http.StatusCreated)
	if created["state"] != "authenticated" {
		t.Fatalf("expected authenticated after register, got %+v", created)
	}
	g.expect(http.MethodPost, "/api/auth/register", body, http.StatusConflict)

	g.expect(http.MethodPost, "/api/auth/logout", "", http.StatusNoContent)
	state := g.expect(http.MethodGet, "/api/auth/state", "", http.StatusOK)
	if state["state"] != "anonymous" {
		t.Fatalf("expected anonymous after logout, got %+v", state)
	}
}

func TestRouter_WaitsForInitialization(t *testing.T) {
	g := newGateway(t, false, 20*time.Millisecond)

	state := g.expect(http.MethodGet, "/api/auth/state", "", http.StatusOK)
	if state["state"] != "initializing" {
		t.Fatalf("expected initializing, got %+v", state)
	}
	g.expect(http.MethodGet, "/api/sessions", "", http.StatusServiceUnavailable)
	g.expect(http.MethodGet, "/health/ready", "", http.StatusServiceUnavailable)

	g.auth.Init(context.Background())
	g.expect(http.MethodGet, "/api/sessions", "", http.StatusOK)
}
