// Command gateway runs the StudyHub tutoring gateway: the client auth store
// and the session directory behind a small JSON API for the UI.
//
//	@title			StudyHub Tutoring Gateway API
//	@version		1.0
//	@description	Session directory and client auth store in front of the StudyHub tutoring backend.
//	@host			localhost:8080
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/studyhub/tutoring-gateway/docs"
	"github.com/studyhub/tutoring-gateway/internal/api"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
	"github.com/studyhub/tutoring-gateway/internal/core/ports"
	"github.com/studyhub/tutoring-gateway/internal/core/service"
	"github.com/studyhub/tutoring-gateway/internal/infrastructure/backend/memory"
	"github.com/studyhub/tutoring-gateway/internal/infrastructure/backend/rest"
	"github.com/studyhub/tutoring-gateway/internal/infrastructure/config"
	dbredis "github.com/studyhub/tutoring-gateway/internal/infrastructure/db/redis"
	"github.com/studyhub/tutoring-gateway/internal/infrastructure/projection"
	"github.com/studyhub/tutoring-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// tutoringBackend is everything the gateway needs from the tutoring service.
type tutoringBackend interface {
	ports.AuthBackend
	ports.ProfileUpdater
	ports.SessionSource
	ports.EnrollmentSource
}

type projectionStore interface {
	ports.ProjectionStore
	Ping(ctx context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gateway: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "gateway"})
	log := logger.Get()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("gateway stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	projections, closeStore, err := newProjectionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	auth := service.NewAuthStore(backend, projections, logger.Component("auth"))
	dir := service.NewDirectoryService(backend, backend, auth, logger.Component("directory"))
	profile := service.NewProfileService(backend, auth, logger.Component("profile"))

	// Each identity sees its own enrollment state.
	auth.OnChange(func(state domain.AuthState) {
		dir.Reset()
		log.Debug().Str("state", string(state)).Msg("directory reset after auth change")
	})
	go auth.Init(ctx)

	e := api.NewRouter(api.Dependencies{
		Auth:        auth,
		Directory:   dir,
		Profile:     profile,
		Projections: projections,
		Log:         logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", cfg.Backend.Mode).
			Str("projection_store", cfg.Projection.Store).
			Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newBackend(cfg *config.Config) (tutoringBackend, error) {
	switch cfg.Backend.Mode {
	case config.BackendREST:
		client, err := rest.New(rest.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout})
		if err != nil {
			return nil, fmt.Errorf("backend client: %w", err)
		}
		return client, nil
	default:
		store := memory.NewStore(0)
		if err := store.SeedDemo(); err != nil {
			return nil, fmt.Errorf("seed mock backend: %w", err)
		}
		return memory.NewBackend(store), nil
	}
}

func newProjectionStore(ctx context.Context, cfg *config.Config) (projectionStore, func(), error) {
	if cfg.Projection.Store != config.ProjectionRedis {
		return projection.NewMemoryStore(), func() {}, nil
	}
	client, err := dbredis.Connect(ctx, dbredis.Config{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("projection store: %w", err)
	}
	return projection.NewRedisStore(client, cfg.Projection.Key), func() { _ = client.Close() }, nil
}
