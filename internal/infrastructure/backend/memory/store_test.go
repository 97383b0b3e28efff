package memory

import (
	"errors"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(bcrypt.MinCost)
}

func mustRegister(t *testing.T, s *Store, role domain.Role, email string) *domain.Identity {
	t.Helper()
	id, err := s.Register(role, domain.Registration{Name: "User " + email, Email: email, Password: "secret1"})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return id
}

func TestStore_RegisterAndAuthenticate(t *testing.T) {
	s := newTestStore(t)
	created := mustRegister(t, s, domain.RoleLearner, "Ada@Example.com ")

	if created.ID == "" || created.Role != domain.RoleLearner || created.Email != "ada@example.com" {
		t.Fatalf("unexpected identity: %+v", created)
	}

	got, err := s.Authenticate(domain.RoleLearner, domain.Credentials{Email: "ADA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, got.ID)
	}
}

func TestStore_AuthenticateFailures(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, domain.RoleLearner, "ada@example.com")

	cases := []struct {
		name  string
		role  domain.Role
		creds domain.Credentials
	}{
		{"wrong password", domain.RoleLearner, domain.Credentials{Email: "ada@example.com", Password: "nope"}},
		{"unknown email", domain.RoleLearner, domain.Credentials{Email: "bob@example.com", Password: "secret1"}},
		{"other role", domain.RoleTutor, domain.Credentials{Email: "ada@example.com", Password: "secret1"}},
		{"empty", domain.RoleLearner, domain.Credentials{}},
	}
	for _, tc := range cases {
		if _, err := s.Authenticate(tc.role, tc.creds); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
	}
}

func TestStore_RegisterValidationAndConflict(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register(domain.RoleTutor, domain.Registration{Email: "x@example.com"})
	ve, ok := domain.IsValidation(err)
	if !ok || ve.Fields["name"] == "" || ve.Fields["password"] == "" {
		t.Fatalf("expected validation error on name and password, got %v", err)
	}

	mustRegister(t, s, domain.RoleTutor, "grace@example.com")
	if _, err := s.Register(domain.RoleTutor, domain.Registration{Name: "G", Email: "GRACE@example.com", Password: "x"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	// Same email under the other role is a separate account.
	mustRegister(t, s, domain.RoleLearner, "grace@example.com")

	if _, err := s.Register("admin", domain.Registration{Name: "A", Email: "a@example.com", Password: "x"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestStore_RegisterKeepsRoleSpecificFields(t *testing.T) {
	s := newTestStore(t)
	rate := 30.0
	tutor, err := s.Register(domain.RoleTutor, domain.Registration{
		Name: "T", Email: "t@example.com", Password: "x",
		Bio: "bio", Expertise: []string{"Math"}, HourlyRate: &rate, Major: "ignored",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if tutor.Bio != "bio" || len(tutor.Expertise) != 1 || tutor.HourlyRate == nil || tutor.Major != "" {
		t.Fatalf("unexpected tutor profile: %+v", tutor)
	}
}

func TestStore_Identity(t *testing.T) {
	s := newTestStore(t)
	created := mustRegister(t, s, domain.RoleTutor, "t@example.com")

	if _, err := s.Identity(domain.RoleTutor, created.ID); err != nil {
		t.Fatalf("identity: %v", err)
	}
	if _, err := s.Identity(domain.RoleLearner, created.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for role mismatch, got %v", err)
	}
	if _, err := s.Identity(domain.RoleTutor, "missing"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown id, got %v", err)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	s := newTestStore(t)
	tutor := mustRegister(t, s, domain.RoleTutor, "t@example.com")
	mustRegister(t, s, domain.RoleTutor, "taken@example.com")
	sess, err := s.AddSession(tutor.ID, domain.Session{Title: "A", MaxParticipants: 3}, nil, nil)
	if err != nil {
		t.Fatalf("add session: %v", err)
	}

	name, email := "Renamed", "New@Example.com"
	updated, err := s.UpdateProfile(domain.RoleTutor, tutor.ID, domain.ProfilePatch{Name: &name, Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name || updated.Email != "new@example.com" {
		t.Fatalf("unexpected identity: %+v", updated)
	}
	if _, err := s.Authenticate(domain.RoleTutor, domain.Credentials{Email: "new@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("login with new email: %v", err)
	}
	if _, err := s.Authenticate(domain.RoleTutor, domain.Credentials{Email: "t@example.com", Password: "secret1"}); err == nil {
		t.Fatal("old email must no longer log in")
	}
	for _, got := range s.Sessions() {
		if got.ID == sess.ID && got.Tutor.Name != name {
			t.Fatalf("tutor summary not synced: %+v", got.Tutor)
		}
	}

	taken := "taken@example.com"
	if _, err := s.UpdateProfile(domain.RoleTutor, tutor.ID, domain.ProfilePatch{Email: &taken}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	blank := " "
	if _, err := s.UpdateProfile(domain.RoleTutor, tutor.ID, domain.ProfilePatch{Name: &blank}); err == nil {
		t.Fatal("expected validation error for blank name")
	}
}

func TestStore_Enroll(t *testing.T) {
	s := newTestStore(t)
	tutor := mustRegister(t, s, domain.RoleTutor, "t@example.com")
	ada := mustRegister(t, s, domain.RoleLearner, "ada@example.com")
	bob := mustRegister(t, s, domain.RoleLearner, "bob@example.com")
	sess, err := s.AddSession(tutor.ID, domain.Session{Title: "Tiny", MaxParticipants: 1}, nil, nil)
	if err != nil {
		t.Fatalf("add session: %v", err)
	}

	if err := s.Enroll(sess.ID, ada.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := s.Enroll(sess.ID, ada.ID); !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
	if err := s.Enroll(sess.ID, bob.ID); !errors.Is(err, domain.ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull, got %v", err)
	}
	if err := s.Enroll("missing", bob.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := s.Enroll(sess.ID, tutor.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for tutor, got %v", err)
	}

	if got := s.Enrolled(ada.ID); len(got) != 1 || got[0].ID != sess.ID {
		t.Fatalf("unexpected enrolled list: %+v", got)
	}
	if got := s.Enrolled(bob.ID); len(got) != 0 {
		t.Fatalf("expected empty list for bob, got %+v", got)
	}
}

func TestStore_EnrollLastSpotRace(t *testing.T) {
	s := newTestStore(t)
	tutor := mustRegister(t, s, domain.RoleTutor, "t@example.com")
	sess, _ := s.AddSession(tutor.ID, domain.Session{Title: "Last spot", MaxParticipants: 1}, nil, nil)

	learners := make([]string, 8)
	for i := range learners {
		learners[i] = mustRegister(t, s, domain.RoleLearner, string(rune('a'+i))+"@example.com").ID
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for _, id := range learners {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if s.Enroll(sess.ID, id) == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	if success != 1 {
		t.Fatalf("expected exactly one successful enrollment, got %d", success)
	}
}

func TestStore_SessionsAreCopies(t *testing.T) {
	s := newTestStore(t)
	tutor := mustRegister(t, s, domain.RoleTutor, "t@example.com")
	if _, err := s.AddSession(tutor.ID, domain.Session{Title: "A", MaxParticipants: 2}, nil, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	list := s.Sessions()
	list[0].StudentIDs = append(list[0].StudentIDs, "intruder")
	list[0].Title = "changed"

	again := s.Sessions()
	if again[0].Title != "A" || len(again[0].StudentIDs) != 0 {
		t.Fatalf("store mutated through returned slice: %+v", again[0])
	}
}

func TestStore_SeedDemo(t *testing.T) {
	s := newTestStore(t)
	if err := s.SeedDemo(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sessions := s.Sessions()
	if len(sessions) != len(demoSessions) {
		t.Fatalf("expected %d sessions, got %d", len(demoSessions), len(sessions))
	}
	for _, sess := range sessions {
		if sess.ID == "" || sess.CreatedAt == nil || sess.StartTime == nil || sess.Tutor.Name == "" {
			t.Fatalf("incomplete seeded session: %+v", sess)
		}
	}
	for _, role := range []domain.Role{domain.RoleLearner, domain.RoleTutor} {
		email := DemoLearnerEmail
		if role == domain.RoleTutor {
			email = DemoTutorEmail
		}
		if _, err := s.Authenticate(role, domain.Credentials{Email: email, Password: DemoPassword}); err != nil {
			t.Fatalf("demo %s login: %v", role, err)
		}
	}
}
