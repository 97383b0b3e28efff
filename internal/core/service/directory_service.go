package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/studyhub/tutoring-gateway/internal/api/metrics"
	"github.com/studyhub/tutoring-gateway/internal/core/directory"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
	"github.com/studyhub/tutoring-gateway/internal/core/ports"
)

// refreshTimeout bounds a shared refresh, which outlives any one caller.
const refreshTimeout = 15 * time.Second

// IdentityProvider exposes the current identity without write access.
type IdentityProvider interface {
	Current() (*domain.Identity, bool)
}

// DirectoryService loads the session list and the learner's enrollments,
// runs the directory engine over them, and mediates join actions.
type DirectoryService struct {
	sessions    ports.SessionSource
	enrollments ports.EnrollmentSource
	identity    IdentityProvider
	log         zerolog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	epoch    uint64
	gen      uint64
	applied  uint64
	loaded   bool
	list     []domain.Session
	enrolled map[string]struct{}
	joined   map[string]struct{}
	joining  map[string]struct{}
	degraded bool
}

// NewDirectoryService returns a DirectoryService with nothing loaded.
func NewDirectoryService(
	sessions ports.SessionSource,
	enrollments ports.EnrollmentSource,
	identity IdentityProvider,
	log zerolog.Logger,
) *DirectoryService {
	return &DirectoryService{
		sessions:    sessions,
		enrollments: enrollments,
		identity:    identity,
		log:         log,
		enrolled:    map[string]struct{}{},
		joined:      map[string]struct{}{},
		joining:     map[string]struct{}{},
	}
}

// Refresh reloads the session list and, for learners, the enrolled list.
// Both requests run concurrently; only the session list is critical.
// Concurrent callers share one fetch. A caller whose ctx ends stops waiting
// but the fetch carries on for the others.
func (s *DirectoryService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen, epoch := s.gen, s.epoch
	s.mu.Unlock()

	ch := s.group.DoChan("refresh:"+strconv.FormatUint(epoch, 10), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return nil, s.fetch(fetchCtx, gen)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *DirectoryService) fetch(ctx context.Context, gen uint64) error {
	ident, ok := s.identity.Current()
	learner := ok && ident.Role == domain.RoleLearner

	var (
		wg        sync.WaitGroup
		list      []domain.Session
		listErr   error
		enrolled  []domain.Session
		enrollErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		list, listErr = s.sessions.ListSessions(ctx)
	}()
	if learner {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enrolled, enrollErr = s.enrollments.ListEnrolled(ctx)
		}()
	}
	wg.Wait()

	if listErr != nil {
		metrics.DirectoryRefreshTotal.WithLabelValues("list_unavailable").Inc()
		s.log.Error().Err(listErr).Msg("failed to load session list")
		return fmt.Errorf("%w: %w", domain.ErrListUnavailable, listErr)
	}

	result := "ok"
	if enrollErr != nil {
		result = "enrollment_degraded"
		s.log.Warn().Err(enrollErr).Msg("enrolled sessions unavailable, showing none as enrolled")
	}
	metrics.DirectoryRefreshTotal.WithLabelValues(result).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen < s.applied {
		s.log.Debug().Uint64("generation", gen).Msg("discarding stale directory response")
		return nil
	}
	s.applied = gen
	s.loaded = true
	s.list = list
	s.degraded = enrollErr != nil
	s.enrolled = make(map[string]struct{}, len(enrolled))
	for _, e := range enrolled {
		s.enrolled[e.ID] = struct{}{}
	}
	return nil
}

// View renders one page of the directory for q, loading the list on first use.
func (s *DirectoryService) View(ctx context.Context, q directory.Query) (*ports.DirectoryView, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	list := s.list
	enrolled := s.enrollmentSetLocked()
	joining := make(map[string]struct{}, len(s.joining))
	for id := range s.joining {
		joining[id] = struct{}{}
	}
	degraded := s.degraded
	s.mu.RUnlock()

	page := directory.Apply(list, q)
	items := make([]ports.DirectoryItem, len(page.Items))
	for i, sess := range page.Items {
		_, isEnrolled := enrolled[sess.ID]
		_, isJoining := joining[sess.ID]
		items[i] = ports.DirectoryItem{
			Session:      sess,
			Availability: directory.AvailabilityOf(sess),
			Enrolled:     isEnrolled,
			Joining:      isJoining,
		}
	}

	sortLabel := string(q.SortBy)
	if sortLabel == "" {
		sortLabel = string(directory.SortUpcoming)
	}
	metrics.DirectoryQueriesTotal.WithLabelValues(sortLabel).Inc()

	return &ports.DirectoryView{
		Items:              items,
		Total:              page.Total,
		Page:               page.Page,
		PerPage:            page.PerPage,
		TotalPages:         page.TotalPages,
		Subjects:           directory.Subjects(list),
		Levels:             directory.Levels(list),
		SubjectCounts:      directory.SubjectCounts(list),
		EnrollmentDegraded: degraded,
	}, nil
}

// SubjectCounts returns per-subject session counts over the full list.
func (s *DirectoryService) SubjectCounts(ctx context.Context) ([]directory.SubjectCount, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return directory.SubjectCounts(s.list), nil
}

// Join enrolls the current learner. Full sessions, sessions already joined and
// sessions with a join in flight are refused locally without contacting the
// backend. A successful join stays recorded for the rest of the view session.
func (s *DirectoryService) Join(ctx context.Context, sessionID string) error {
	ident, ok := s.identity.Current()
	if !ok {
		return domain.ErrUnauthorized
	}
	if ident.Role != domain.RoleLearner {
		return domain.ErrForbidden
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	idx := s.indexLocked(sessionID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	if _, ok := s.enrollmentSetLocked()[sessionID]; ok {
		s.mu.Unlock()
		metrics.JoinAttemptsTotal.WithLabelValues("already_enrolled").Inc()
		return domain.ErrAlreadyEnrolled
	}
	if !directory.AvailabilityOf(s.list[idx]).Joinable() {
		s.mu.Unlock()
		metrics.JoinAttemptsTotal.WithLabelValues("full").Inc()
		return domain.ErrSessionFull
	}
	if _, busy := s.joining[sessionID]; busy {
		s.mu.Unlock()
		metrics.JoinAttemptsTotal.WithLabelValues("in_flight").Inc()
		return domain.ErrJoinInFlight
	}
	s.joining[sessionID] = struct{}{}
	epoch := s.epoch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.joining, sessionID)
		s.mu.Unlock()
	}()

	if err := s.enrollments.Join(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrAlreadyEnrolled) {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrSessionFull) {
			metrics.JoinAttemptsTotal.WithLabelValues("rejected").Inc()
			s.log.Info().Err(err).Str("session_id", sessionID).Msg("join rejected by backend")
			return fmt.Errorf("%w: %w", domain.ErrJoinRejected, err)
		}
		metrics.JoinAttemptsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("join failed")
		return fmt.Errorf("join session %s: %w", sessionID, err)
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.joined[sessionID] = struct{}{}
		if i := s.indexLocked(sessionID); i >= 0 && !s.list[i].HasStudent(ident.ID) {
			updated := s.list[i].Clone()
			updated.StudentIDs = append(updated.StudentIDs, ident.ID)
			list := append([]domain.Session(nil), s.list...)
			list[i] = updated
			s.list = list
		}
	}
	s.mu.Unlock()

	metrics.JoinAttemptsTotal.WithLabelValues("joined").Inc()
	s.log.Info().Str("session_id", sessionID).Str("user_id", ident.ID).Msg("joined session")
	return nil
}

// Reset forgets everything loaded for the previous identity. Responses still
// in flight from before the reset are discarded when they arrive.
func (s *DirectoryService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.gen++
	s.applied = s.gen
	s.loaded = false
	s.list = nil
	s.degraded = false
	s.enrolled = map[string]struct{}{}
	s.joined = map[string]struct{}{}
}

func (s *DirectoryService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return domain.ErrListUnavailable
	}
	return nil
}

// enrollmentSetLocked unions backend enrollments with joins made locally.
func (s *DirectoryService) enrollmentSetLocked() map[string]struct{} {
	out := make(map[string]struct{}, len(s.enrolled)+len(s.joined))
	for id := range s.enrolled {
		out[id] = struct{}{}
	}
	for id := range s.joined {
		out[id] = struct{}{}
	}
	return out
}

func (s *DirectoryService) indexLocked(id string) int {
	for i, sess := range s.list {
		if sess.ID == id {
			return i
		}
	}
	return -1
}
