// Package memory is an in-process stand-in for the tutoring backend. Store
// holds accounts, sessions and enrollments for any number of users; Backend
// wraps it with one logged-in identity per role, the way a browser cookie
// jar would, and implements the gateway's backend ports.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

type account struct {
	identity     domain.Identity
	passwordHash []byte
	createdAt    time.Time
}

// Store is safe for concurrent use.
type Store struct {
	cost int
	now  func() time.Time

	mu       sync.RWMutex
	accounts map[domain.Role]map[string]*account // role → lower-cased email
	byID     map[string]*account
	sessions []domain.Session
	owners   map[string]string // session id → tutor id
}

// NewStore returns an empty store hashing passwords with the given bcrypt
// cost. A cost of 0 selects bcrypt.DefaultCost.
func NewStore(cost int) *Store {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Store{
		cost: cost,
		now:  func() time.Time { return time.Now().UTC() },
		accounts: map[domain.Role]map[string]*account{
			domain.RoleLearner: {},
			domain.RoleTutor:   {},
		},
		byID:   map[string]*account{},
		owners: map[string]string{},
	}
}

// Register creates an account. Emails are unique per role.
func (s *Store) Register(role domain.Role, reg domain.Registration) (*domain.Identity, error) {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}
	email := normalizeEmail(reg.Email)
	fields := map[string]string{}
	if strings.TrimSpace(reg.Name) == "" {
		fields["name"] = "is required"
	}
	if email == "" {
		fields["email"] = "is required"
	}
	if reg.Password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[role][email]; exists {
		return nil, domain.ErrConflict
	}

	acc := &account{
		identity: domain.Identity{
			ID:    uuid.NewString(),
			Name:  strings.TrimSpace(reg.Name),
			Email: email,
			Role:  role,
		},
		passwordHash: hash,
		createdAt:    s.now(),
	}
	switch role {
	case domain.RoleTutor:
		acc.identity.Bio = reg.Bio
		acc.identity.Expertise = append([]string(nil), reg.Expertise...)
		if reg.HourlyRate != nil {
			rate := *reg.HourlyRate
			acc.identity.HourlyRate = &rate
		}
	case domain.RoleLearner:
		acc.identity.Major = reg.Major
		acc.identity.University = reg.University
	}

	s.accounts[role][email] = acc
	s.byID[acc.identity.ID] = acc
	out := acc.identity.Clone()
	return &out, nil
}

// Authenticate checks credentials against the accounts of one role.
func (s *Store) Authenticate(role domain.Role, creds domain.Credentials) (*domain.Identity, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	s.mu.RLock()
	acc, ok := s.accounts[role][email]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(creds.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := acc.identity.Clone()
	return &out, nil
}

// Identity looks up an account by id and role. A missing or mismatched
// account is reported as domain.ErrUnauthorized since callers hold the id
// from a session token.
func (s *Store) Identity(role domain.Role, id string) (*domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byID[id]
	if !ok || acc.identity.Role != role {
		return nil, domain.ErrUnauthorized
	}
	out := acc.identity.Clone()
	return &out, nil
}

// UpdateProfile applies patch to the account. Role and id never change.
// Tutor profile changes are mirrored into the tutor summary of their sessions.
func (s *Store) UpdateProfile(role domain.Role, id string, patch domain.ProfilePatch) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[id]
	if !ok || acc.identity.Role != role {
		return nil, domain.ErrUnauthorized
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domain.NewValidationError(map[string]string{"name": "must not be empty"})
	}
	oldEmail := acc.identity.Email
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email == "" {
			return nil, domain.NewValidationError(map[string]string{"email": "must not be empty"})
		}
		if other, taken := s.accounts[role][email]; taken && other != acc {
			return nil, domain.ErrConflict
		}
		patch.Email = &email
	}

	patch.Apply(&acc.identity)
	acc.identity.ID, acc.identity.Role = id, role

	if acc.identity.Email != oldEmail {
		delete(s.accounts[role], oldEmail)
		s.accounts[role][acc.identity.Email] = acc
	}
	if role == domain.RoleTutor {
		s.syncTutorLocked(acc)
	}

	out := acc.identity.Clone()
	return &out, nil
}

// AddSession stores a session offered by the tutor with tutorID. Missing ids
// and creation times are filled in.
func (s *Store) AddSession(tutorID string, sess domain.Session, rating *float64, reviews *int) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[tutorID]
	if !ok || acc.identity.Role != domain.RoleTutor {
		return domain.Session{}, domain.ErrForbidden
	}
	sess = sess.Clone()
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt == nil {
		now := s.now()
		sess.CreatedAt = &now
	}
	if sess.StudentIDs == nil {
		sess.StudentIDs = []string{}
	}
	sess.Tutor = domain.TutorSummary{
		Name:        acc.identity.Name,
		Avatar:      acc.identity.Avatar,
		Rating:      rating,
		ReviewCount: reviews,
		HourlyRate:  acc.identity.HourlyRate,
	}
	s.sessions = append(s.sessions, sess)
	s.owners[sess.ID] = tutorID
	return sess.Clone(), nil
}

// Sessions returns every session, oldest first.
func (s *Store) Sessions() []domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Clone()
	}
	return out
}

// Enrolled returns the sessions learnerID is a student of.
func (s *Store) Enrolled(learnerID string) []domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Session{}
	for _, sess := range s.sessions {
		if sess.HasStudent(learnerID) {
			out = append(out, sess.Clone())
		}
	}
	return out
}

// Enroll adds learnerID to the session. Capacity is enforced here, so two
// learners racing for the last spot get one success and one domain.ErrSessionFull.
func (s *Store) Enroll(sessionID, learnerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[learnerID]
	if !ok || acc.identity.Role != domain.RoleLearner {
		return domain.ErrForbidden
	}
	for i := range s.sessions {
		sess := &s.sessions[i]
		if sess.ID != sessionID {
			continue
		}
		if sess.HasStudent(learnerID) {
			return domain.ErrAlreadyEnrolled
		}
		if sess.EnrolledCount() >= sess.MaxParticipants {
			return domain.ErrSessionFull
		}
		sess.StudentIDs = append(sess.StudentIDs, learnerID)
		return nil
	}
	return domain.ErrSessionNotFound
}

func (s *Store) syncTutorLocked(acc *account) {
	for i := range s.sessions {
		if s.owners[s.sessions[i].ID] != acc.identity.ID {
			continue
		}
		t := &s.sessions[i].Tutor
		t.Name = acc.identity.Name
		t.Avatar = acc.identity.Avatar
		t.HourlyRate = acc.identity.HourlyRate
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
