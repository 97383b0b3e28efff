package memory

import (
	"context"
	"sync"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// Backend implements the gateway's backend ports directly on a Store. It
// remembers one logged-in account per role, the in-process equivalent of the
// backend's session cookie, so it is lost when the process exits.
type Backend struct {
	store *Store

	mu      sync.Mutex
	current map[domain.Role]string
}

func NewBackend(store *Store) *Backend {
	return &Backend{store: store, current: map[domain.Role]string{}}
}

func (b *Backend) Login(ctx context.Context, role domain.Role, creds domain.Credentials) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := b.store.Authenticate(role, creds)
	if err != nil {
		return nil, err
	}
	b.setCurrent(role, id.ID)
	return id, nil
}

func (b *Backend) Register(ctx context.Context, role domain.Role, reg domain.Registration) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := b.store.Register(role, reg)
	if err != nil {
		return nil, err
	}
	b.setCurrent(role, id.ID)
	return id, nil
}

func (b *Backend) Logout(_ context.Context, role domain.Role) error {
	b.mu.Lock()
	delete(b.current, role)
	b.mu.Unlock()
	return nil
}

func (b *Backend) WhoAmI(ctx context.Context, role domain.Role) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	userID, ok := b.currentID(role)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return b.store.Identity(role, userID)
}

func (b *Backend) UpdateProfile(ctx context.Context, role domain.Role, patch domain.ProfilePatch) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	userID, ok := b.currentID(role)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return b.store.UpdateProfile(role, userID, patch)
}

func (b *Backend) ListSessions(ctx context.Context) ([]domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.store.Sessions(), nil
}

func (b *Backend) ListEnrolled(ctx context.Context) ([]domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	userID, ok := b.currentID(domain.RoleLearner)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return b.store.Enrolled(userID), nil
}

func (b *Backend) Join(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	userID, ok := b.currentID(domain.RoleLearner)
	if !ok {
		return domain.ErrUnauthorized
	}
	return b.store.Enroll(sessionID, userID)
}

func (b *Backend) setCurrent(role domain.Role, id string) {
	b.mu.Lock()
	b.current[role] = id
	b.mu.Unlock()
}

func (b *Backend) currentID(role domain.Role) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.current[role]
	return id, ok
}
