// Command devbackend serves a seeded in-memory tutoring backend on the same
// REST contract as the real one. Point the gateway at it with
// BACKEND_MODE=rest BACKEND_URL=http://localhost:5000.
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

	"github.com/google/uuid"

	"github.com/studyhub/tutoring-gateway/internal/devserver"
	"github.com/studyhub/tutoring-gateway/internal/infrastructure/backend/memory"
	"github.com/studyhub/tutoring-gateway/internal/infrastructure/config"
	"github.com/studyhub/tutoring-gateway/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devbackend: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "devbackend"})
	log := logger.Get()

	store := memory.NewStore(0)
	if err := store.SeedDemo(); err != nil {
		log.Fatal().Err(err).Msg("seed demo data")
	}

	secret := cfg.DevBackend.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using a random secret; sessions end on restart")
	}

	e := devserver.New(store, devserver.Config{
		JWTSecret:    secret,
		TokenTTL:     cfg.DevBackend.TokenTTL,
		CookieSecure: cfg.DevBackend.CookieSecure,
	}, logger.Component("http"))

	go func() {
		log.Info().
			Str("port", cfg.DevBackend.Port).
			Str("learner", memory.DemoLearnerEmail).
			Str("tutor", memory.DemoTutorEmail).
			Msg("dev backend listening")
		if err := e.Start(":" + cfg.DevBackend.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
