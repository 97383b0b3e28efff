package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/studyhub/tutoring-gateway/internal/api/metrics"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
	"github.com/studyhub/tutoring-gateway/internal/core/ports"
)

// AuthStore holds the one identity of this gateway process. It starts in
// Initializing, resolves to Authenticated or Anonymous once Init has run, and
// moves between those two on login, registration and logout.
//
// Login and Register are single-flight: an overlapping call is rejected with
// domain.ErrAuthInProgress rather than queued. A Logout that lands while one
// of them is in flight wins; the late result is discarded.
type AuthStore struct {
	backend     ports.AuthBackend
	projections ports.ProjectionStore
	log         zerolog.Logger

	mu        sync.RWMutex
	state     domain.AuthState
	identity  *domain.Identity
	listeners []func(domain.AuthState)
	epoch     uint64 // bumped by Logout

	// transMu orders transitions so projection writes and listener calls
	// never interleave.
	transMu sync.Mutex

	ready     chan struct{}
	readyOnce sync.Once
	initOnce  sync.Once
	busy      atomic.Bool
}

// NewAuthStore returns a store in the Initializing state. Call Init once.
func NewAuthStore(backend ports.AuthBackend, projections ports.ProjectionStore, log zerolog.Logger) *AuthStore {
	return &AuthStore{
		backend:     backend,
		projections: projections,
		log:         log,
		state:       domain.AuthInitializing,
		ready:       make(chan struct{}),
	}
}

// OnChange registers fn to be called after every transition into
// Authenticated or Anonymous. Register listeners before Init.
func (s *AuthStore) OnChange(fn func(domain.AuthState)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *AuthStore) State() domain.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current returns a copy of the authenticated identity.
func (s *AuthStore) Current() (*domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil, false
	}
	c := s.identity.Clone()
	return &c, true
}

// Ready is closed once the store has left Initializing.
func (s *AuthStore) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until the startup revalidation has resolved.
func (s *AuthStore) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Init revalidates a persisted identity against the backend. Any failure
// (missing or corrupt projection, network error, 401) ends in Anonymous with
// the projection removed. Only the first call has any effect.
func (s *AuthStore) Init(ctx context.Context) {
	s.initOnce.Do(func() { s.revalidate(ctx) })
}

func (s *AuthStore) revalidate(ctx context.Context) {
	epoch := s.currentEpoch()
	p, err := s.projections.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("persisted identity unreadable, starting anonymous")
		s.becomeAnonymous(ctx)
		return
	}
	if p == nil {
		s.becomeAnonymous(ctx)
		return
	}

	role, err := domain.ParseRole(string(p.Role))
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", p.ID).Msg("persisted identity has no usable role")
		s.becomeAnonymous(ctx)
		return
	}

	id, err := s.backend.WhoAmI(ctx, role)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.log.Debug().Str("user_id", p.ID).Msg("backend session expired")
		} else {
			s.log.Warn().Err(err).Str("user_id", p.ID).Msg("session revalidation failed")
		}
		s.becomeAnonymous(ctx)
		return
	}

	merged := id.Clone()
	merged.Role = role
	if merged.ID == "" {
		merged.ID = p.ID
	}
	if merged.Name == "" {
		merged.Name = p.Name
	}
	if !s.authenticate(ctx, merged, epoch) {
		s.log.Debug().Str("user_id", merged.ID).Msg("logged out during revalidation")
	}
}

// Login authenticates against the role-specific endpoint. Without a role the
// learner endpoint is tried first, then the tutor one; if both fail the
// learner error is returned.
func (s *AuthStore) Login(ctx context.Context, creds domain.Credentials, role *domain.Role) (*domain.Identity, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrAuthInProgress
	}
	defer s.busy.Store(false)

	if err := s.WaitReady(ctx); err != nil {
		return nil, err
	}
	epoch := s.currentEpoch()

	var (
		id   *domain.Identity
		used domain.Role
		err  error
	)
	if role != nil {
		used = *role
		if _, err := domain.ParseRole(string(used)); err != nil {
			return nil, err
		}
		id, err = s.backend.Login(ctx, used, creds)
	} else {
		used = domain.RoleLearner
		id, err = s.backend.Login(ctx, domain.RoleLearner, creds)
		if err != nil {
			tutor, tutorErr := s.backend.Login(ctx, domain.RoleTutor, creds)
			if tutorErr == nil {
				id, used, err = tutor, domain.RoleTutor, nil
			} else {
				s.log.Debug().Err(tutorErr).Msg("tutor login fallback failed")
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	identity := id.Clone()
	identity.Role = used
	if !s.authenticate(ctx, identity, epoch) {
		s.discard(ctx, used)
		return nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}

	s.log.Info().Str("user_id", identity.ID).Str("role", string(used)).Msg("logged in")
	return s.snapshot(identity), nil
}

// Register creates an account and signs it in.
func (s *AuthStore) Register(ctx context.Context, reg domain.Registration, role domain.Role) (*domain.Identity, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, domain.ErrAuthInProgress
	}
	defer s.busy.Store(false)

	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}
	if err := s.WaitReady(ctx); err != nil {
		return nil, err
	}
	epoch := s.currentEpoch()

	id, err := s.backend.Register(ctx, role, reg)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	identity := id.Clone()
	identity.Role = role
	if !s.authenticate(ctx, identity, epoch) {
		s.discard(ctx, role)
		return nil, fmt.Errorf("register: %w", domain.ErrUnauthorized)
	}

	s.log.Info().Str("user_id", identity.ID).Str("role", string(role)).Msg("registered")
	return s.snapshot(identity), nil
}

// Logout ends the backend session on a best-effort basis and always clears
// local state. A login or registration still in flight will not be applied.
func (s *AuthStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	var role domain.Role
	if s.identity != nil {
		role = s.identity.Role
	}
	s.mu.Unlock()

	if role != "" {
		if err := s.backend.Logout(ctx, role); err != nil {
			s.log.Warn().Err(err).Str("role", string(role)).Msg("backend logout failed, clearing local session anyway")
		}
	}
	s.becomeAnonymous(ctx)
}

// UpdateUser merges patch into the in-memory identity and re-persists the
// projection. It does not contact the backend.
func (s *AuthStore) UpdateUser(ctx context.Context, patch domain.ProfilePatch) (*domain.Identity, error) {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return nil, domain.ErrUnauthorized
	}
	patch.Apply(s.identity)
	updated := s.identity.Clone()
	s.mu.Unlock()

	s.persist(ctx, updated.Project())
	return &updated, nil
}

func (s *AuthStore) currentEpoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// authenticate applies id unless a Logout has happened since epoch was read.
func (s *AuthStore) authenticate(ctx context.Context, id domain.Identity, epoch uint64) bool {
	s.transMu.Lock()
	defer s.transMu.Unlock()

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return false
	}
	stored := id.Clone()
	s.identity = &stored
	s.state = domain.AuthAuthenticated
	listeners := append([]func(domain.AuthState){}, s.listeners...)
	s.mu.Unlock()

	s.persist(ctx, id.Project())
	s.transitioned(domain.AuthAuthenticated, listeners)
	return true
}

// discard ends a backend session whose local result was dropped.
func (s *AuthStore) discard(ctx context.Context, role domain.Role) {
	s.log.Info().Str("role", string(role)).Msg("logged out while authenticating, discarding session")
	if err := s.backend.Logout(ctx, role); err != nil {
		s.log.Warn().Err(err).Str("role", string(role)).Msg("backend logout of discarded session failed")
	}
}

func (s *AuthStore) becomeAnonymous(ctx context.Context) {
	s.transMu.Lock()
	defer s.transMu.Unlock()

	s.mu.Lock()
	s.identity = nil
	s.state = domain.AuthAnonymous
	listeners := append([]func(domain.AuthState){}, s.listeners...)
	s.mu.Unlock()

	if err := s.projections.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted identity")
	}
	s.transitioned(domain.AuthAnonymous, listeners)
}

func (s *AuthStore) transitioned(state domain.AuthState, listeners []func(domain.AuthState)) {
	metrics.AuthTransitionsTotal.WithLabelValues(string(state)).Inc()
	for _, fn := range listeners {
		fn(state)
	}
	s.readyOnce.Do(func() { close(s.ready) })
}

// persist failures are logged, not returned: the in-memory identity stays
// authoritative and the next successful write repairs the projection.
func (s *AuthStore) persist(ctx context.Context, p domain.Projection) {
	if err := s.projections.Save(ctx, p); err != nil {
		s.log.Warn().Err(err).Str("user_id", p.ID).Msg("failed to persist identity")
	}
}

func (s *AuthStore) snapshot(id domain.Identity) *domain.Identity {
	c := id.Clone()
	return &c
}
