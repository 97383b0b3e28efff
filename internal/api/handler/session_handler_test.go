package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyhub/tutoring-gateway/internal/api/middleware"
	"github.com/studyhub/tutoring-gateway/internal/core/directory"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
	"github.com/studyhub/tutoring-gateway/internal/core/ports"
)

type stubDirectory struct {
	viewFn    func(ctx context.Context, q directory.Query) (*ports.DirectoryView, error)
	refreshFn func(ctx context.Context) error
	joinFn    func(ctx context.Context, id string) error
	countsFn  func(ctx context.Context) ([]directory.SubjectCount, error)
	queries   []directory.Query
}

func (d *stubDirectory) Refresh(ctx context.Context) error { return d.refreshFn(ctx) }

func (d *stubDirectory) View(ctx context.Context, q directory.Query) (*ports.DirectoryView, error) {
	d.queries = append(d.queries, q)
	if d.viewFn == nil {
		return &ports.DirectoryView{Page: q.Page, PerPage: q.PerPage}, nil
	}
	return d.viewFn(ctx, q)
}

func (d *stubDirectory) SubjectCounts(ctx context.Context) ([]directory.SubjectCount, error) {
	return d.countsFn(ctx)
}

func (d *stubDirectory) Join(ctx context.Context, id string) error { return d.joinFn(ctx, id) }

func (d *stubDirectory) Reset() {}

func listRequest(e *echo.Echo, h *SessionHandler, target string) (*httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	return rec, h.List(c)
}

func TestSessionHandler_List_MapsView(t *testing.T) {
	e := newEcho()
	start := time.Date(2026, 11, 2, 15, 0, 0, 0, time.UTC)
	dir := &stubDirectory{
		viewFn: func(_ context.Context, q directory.Query) (*ports.DirectoryView, error) {
			if q.Search != "calc" || q.Subject != "Mathematics" || q.Level != directory.All || q.SortBy != directory.SortPopular {
				t.Fatalf("unexpected query: %+v", q)
			}
			full := domain.Session{ID: "s1", Title: "Calculus", MaxParticipants: 1, StudentIDs: []string{"x"}, StartTime: &start}
			open := domain.Session{ID: "s2", Title: "Calculus II", MaxParticipants: 5, Duration: 90}
			return &ports.DirectoryView{
				Items: []ports.DirectoryItem{
					{Session: full, Availability: directory.AvailabilityOf(full)},
					{Session: open, Availability: directory.AvailabilityOf(open), Enrolled: true},
				},
				Total:      2,
				Page:       1,
				PerPage:    directory.ItemsPerPage,
				TotalPages: 1,
				Subjects:   []string{"Mathematics"},
			}, nil
		},
	}
	h := NewSessionHandler(dir)

	rec, err := listRequest(e, h, "/api/sessions?search=calc&subject=Mathematics&sort=popular")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listSessionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Items) != 2 || resp.Total != 2 || resp.PerPage != 6 {
		t.Fatalf("unexpected page: %+v", resp)
	}
	first, second := resp.Items[0], resp.Items[1]
	if first.AvailabilityLabel != "Full" || first.CanJoin || first.Duration != domain.DefaultDuration {
		t.Fatalf("unexpected full item: %+v", first)
	}
	if second.AvailabilityLabel != "5 spots available" || second.CanJoin || !second.Enrolled || second.Duration != 90 {
		t.Fatalf("unexpected enrolled item: %+v", second)
	}
	if resp.Query.Sort != "popular" || resp.Query.Subject != "Mathematics" {
		t.Fatalf("unexpected applied query: %+v", resp.Query)
	}
	if resp.Levels == nil || resp.SubjectCounts == nil {
		t.Fatal("list fields must serialize as empty arrays, not null")
	}
}

func TestSessionHandler_List_FilterChangeResetsPage(t *testing.T) {
	e := newEcho()
	dir := &stubDirectory{}
	h := NewSessionHandler(dir)

	steps := []struct {
		target   string
		wantPage int
	}{
		{"/api/sessions?page=3", 3},
		{"/api/sessions?page=3&subject=Physics", 1},
		{"/api/sessions?page=2&subject=Physics", 2},
		{"/api/sessions?page=2&subject=Physics&sort=newest", 1},
		{"/api/sessions?page=4&subject=Physics&sort=newest", 4},
	}
	for _, step := range steps {
		if _, err := listRequest(e, h, step.target); err != nil {
			t.Fatalf("%s: handler error: %v", step.target, err)
		}
		got := dir.queries[len(dir.queries)-1].Page
		if got != step.wantPage {
			t.Fatalf("%s: expected page %d, got %d", step.target, step.wantPage, got)
		}
	}
}

func TestSessionHandler_List_UnknownSort(t *testing.T) {
	e := newEcho()
	dir := &stubDirectory{}
	h := NewSessionHandler(dir)

	_, err := listRequest(e, h, "/api/sessions?sort=price-asc")
	ve, ok := domain.IsValidation(err)
	if !ok || ve.Fields["sort"] == "" {
		t.Fatalf("expected sort validation error, got %v", err)
	}
	if len(dir.queries) != 0 {
		t.Fatal("directory must not be queried")
	}
}

func TestSessionHandler_List_PageOutOfRange(t *testing.T) {
	e := newEcho()
	dir := &stubDirectory{}
	h := NewSessionHandler(dir)

	_, err := listRequest(e, h, "/api/sessions?page=9223372036854775807")
	ve, ok := domain.IsValidation(err)
	if !ok || ve.Fields["page"] == "" {
		t.Fatalf("expected page validation error, got %v", err)
	}
	if len(dir.queries) != 0 {
		t.Fatal("directory must not be queried")
	}
}

func TestSessionHandler_List_Unavailable(t *testing.T) {
	e := newEcho()
	dir := &stubDirectory{
		viewFn: func(context.Context, directory.Query) (*ports.DirectoryView, error) {
			return nil, domain.ErrListUnavailable
		},
	}
	h := NewSessionHandler(dir)

	if _, err := listRequest(e, h, "/api/sessions"); !errors.Is(err, domain.ErrListUnavailable) {
		t.Fatalf("expected ErrListUnavailable, got %v", err)
	}
}

func TestSessionHandler_Refresh(t *testing.T) {
	e := newEcho()
	calls := 0
	dir := &stubDirectory{refreshFn: func(context.Context) error { calls++; return nil }}
	h := NewSessionHandler(dir)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/sessions/refresh", nil), rec)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || calls != 1 {
		t.Fatalf("expected 204 and one refresh, got %d / %d", rec.Code, calls)
	}
}

func joinContext(e *echo.Echo, id string, withIdentity bool) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/join", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if withIdentity {
		c.Set(middleware.CtxUserID, "l1")
		c.Set(middleware.CtxRole, "learner")
	}
	return c, rec
}

func TestSessionHandler_Join_Success(t *testing.T) {
	e := newEcho()
	dir := &stubDirectory{
		joinFn: func(_ context.Context, id string) error {
			if id != "s7" {
				t.Fatalf("unexpected session id %q", id)
			}
			return nil
		},
	}
	h := NewSessionHandler(dir)

	c, rec := joinContext(e, "s7", true)
	if err := h.Join(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp joinResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.SessionID != "s7" || !resp.Enrolled {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSessionHandler_Join_MissingIdentity(t *testing.T) {
	e := newEcho()
	h := NewSessionHandler(&stubDirectory{})

	c, _ := joinContext(e, "s7", false)
	var he *echo.HTTPError
	if err := h.Join(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSessionHandler_Join_PropagatesRefusal(t *testing.T) {
	for _, want := range []error{domain.ErrSessionFull, domain.ErrAlreadyEnrolled, domain.ErrJoinInFlight, domain.ErrJoinRejected} {
		e := newEcho()
		dir := &stubDirectory{joinFn: func(context.Context, string) error { return want }}
		h := NewSessionHandler(dir)

		c, _ := joinContext(e, "s1", true)
		if err := h.Join(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestSessionHandler_Subjects(t *testing.T) {
	e := newEcho()
	dir := &stubDirectory{
		countsFn: func(context.Context) ([]directory.SubjectCount, error) { return nil, nil },
	}
	h := NewSessionHandler(dir)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/subjects", nil), rec)
	if err := h.Subjects(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}
