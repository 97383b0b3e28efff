package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
	"github.com/studyhub/tutoring-gateway/internal/core/ports"
)

// IdentityStore is the part of the auth store that profile updates need.
type IdentityStore interface {
	IdentityProvider
	UpdateUser(ctx context.Context, patch domain.ProfilePatch) (*domain.Identity, error)
}

// ProfileService sends profile changes to the backend and folds the
// authoritative response back into the auth store.
type ProfileService struct {
	updater ports.ProfileUpdater
	store   IdentityStore
	log     zerolog.Logger
}

func NewProfileService(updater ports.ProfileUpdater, store IdentityStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{updater: updater, store: store, log: log}
}

func (s *ProfileService) Update(ctx context.Context, patch domain.ProfilePatch) (*domain.Identity, error) {
	ident, ok := s.store.Current()
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	updated, err := s.updater.UpdateProfile(ctx, ident.Role, patch)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	result, err := s.store.UpdateUser(ctx, domain.PatchFrom(*updated))
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", result.ID).Msg("profile updated")
	return result, nil
}
