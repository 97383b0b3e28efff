package ports

import (
	"context"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// ProjectionStore persists the minimal identity projection under a single
// well-known key.
type ProjectionStore interface {
	// Load returns (nil, nil) when nothing is stored.
	Load(ctx context.Context) (*domain.Projection, error)
	Save(ctx context.Context, p domain.Projection) error
	Clear(ctx context.Context) error
}
