package ports

import (
	"context"

	"github.com/studyhub/tutoring-gateway/internal/core/directory"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// AuthService is the surface the HTTP layer uses to drive the auth store.
type AuthService interface {
	State() domain.AuthState
	Current() (*domain.Identity, bool)
	WaitReady(ctx context.Context) error
	Login(ctx context.Context, creds domain.Credentials, role *domain.Role) (*domain.Identity, error)
	Register(ctx context.Context, reg domain.Registration, role domain.Role) (*domain.Identity, error)
	Logout(ctx context.Context)
}

// DirectoryItem is a session annotated for display.
type DirectoryItem struct {
	Session      domain.Session
	Availability directory.Availability
	Enrolled     bool
	Joining      bool
}

// DirectoryView is one rendered page of the session directory.
type DirectoryView struct {
	Items              []DirectoryItem
	Total              int
	Page               int
	PerPage            int
	TotalPages         int
	Subjects           []string
	Levels             []string
	SubjectCounts      []directory.SubjectCount
	EnrollmentDegraded bool
}

// DirectoryService is the caller of the directory engine.
type DirectoryService interface {
	Refresh(ctx context.Context) error
	View(ctx context.Context, q directory.Query) (*DirectoryView, error)
	SubjectCounts(ctx context.Context) ([]directory.SubjectCount, error)
	Join(ctx context.Context, sessionID string) error
	Reset()
}

// ProfileService applies profile updates for the authenticated identity.
type ProfileService interface {
	Update(ctx context.Context, patch domain.ProfilePatch) (*domain.Identity, error)
}
