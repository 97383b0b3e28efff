package ports

import (
	"context"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// SessionSource lists every session offered on the platform.
type SessionSource interface {
	ListSessions(ctx context.Context) ([]domain.Session, error)
}

// EnrollmentSource answers which sessions the current learner belongs to and
// performs enrollment. It is independent of SessionSource: the two lists can
// disagree transiently and are joined by session id at the view layer.
type EnrollmentSource interface {
	ListEnrolled(ctx context.Context) ([]domain.Session, error)
	Join(ctx context.Context, sessionID string) error
}
