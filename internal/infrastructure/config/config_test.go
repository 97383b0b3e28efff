package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Backend.Mode != BackendMock || cfg.Projection.Store != ProjectionMemory {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Fatalf("expected 10s backend timeout, got %s", cfg.Backend.Timeout)
	}
	if cfg.Projection.Key != "studyhub:user" {
		t.Fatalf("unexpected projection key %q", cfg.Projection.Key)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("default env should be development")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"BACKEND_MODE":     "rest",
		"BACKEND_URL":      "https://api.studyhub.dev",
		"BACKEND_TIMEOUT":  "3s",
		"PROJECTION_STORE": "redis",
		"REDIS_ADDR":       "redis:6379",
		"REDIS_DB":         "2",
		"REDIS_PASSWORD":   "s3cret",
		"ENV":              "production",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.URL != "https://api.studyhub.dev" || cfg.Backend.Timeout != 3*time.Second {
		t.Fatalf("backend not loaded: %+v", cfg.Backend)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 || cfg.Redis.Password != "s3cret" {
		t.Fatalf("redis not loaded: %+v", cfg.Redis)
	}
	if cfg.IsDevelopment() {
		t.Fatal("production must not count as development")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown backend", map[string]string{"BACKEND_MODE": "grpc"}, "BACKEND_MODE"},
		{"unknown store", map[string]string{"PROJECTION_STORE": "disk"}, "PROJECTION_STORE"},
		{"zero timeout", map[string]string{"BACKEND_TIMEOUT": "0s"}, "BACKEND_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_MissingAddresses(t *testing.T) {
	base := func() Config {
		return Config{
			Backend:    BackendConfig{Mode: BackendMock, Timeout: time.Second},
			Projection: ProjectionConfig{Store: ProjectionMemory, Key: "k"},
		}
	}

	rest := base()
	rest.Backend.Mode = BackendREST
	if err := rest.Validate(); err == nil || !strings.Contains(err.Error(), "BACKEND_URL") {
		t.Fatalf("expected BACKEND_URL error, got %v", err)
	}

	redis := base()
	redis.Projection.Store = ProjectionRedis
	if err := redis.Validate(); err == nil || !strings.Contains(err.Error(), "REDIS_ADDR") {
		t.Fatalf("expected REDIS_ADDR error, got %v", err)
	}

	ok := base()
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
