package ports

import (
	"context"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// AuthBackend is the capability the auth store delegates identity operations
// to. The mock and REST implementations are interchangeable.
type AuthBackend interface {
	Login(ctx context.Context, role domain.Role, creds domain.Credentials) (*domain.Identity, error)
	Register(ctx context.Context, role domain.Role, reg domain.Registration) (*domain.Identity, error)
	Logout(ctx context.Context, role domain.Role) error
	// WhoAmI returns the identity bound to the current backend session, or
	// domain.ErrUnauthorized when there is none.
	WhoAmI(ctx context.Context, role domain.Role) (*domain.Identity, error)
}

// ProfileUpdater persists profile changes and returns the authoritative identity.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, role domain.Role, patch domain.ProfilePatch) (*domain.Identity, error)
}
