package projection

import (
	"context"
	"errors"
	"testing"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if got, err := store.Load(ctx); err != nil || got != nil {
		t.Fatalf("expected empty store, got %+v, %v", got, err)
	}

	want := domain.Projection{ID: "u1", Role: domain.RoleTutor, Name: "Grace"}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil || *got != want {
		t.Fatalf("expected %+v, got %+v, %v", want, got, err)
	}

	store.SetRaw([]byte("garbage"))
	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrCorruptProjection) {
		t.Fatalf("expected ErrCorruptProjection, got %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := store.Load(ctx); got != nil {
		t.Fatalf("expected nil after clear, got %+v", got)
	}
}
