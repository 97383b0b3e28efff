package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), DB: 0})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Fatalf("expected value in miniredis, got %q", got)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestConnect_Password(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	if _, err := Connect(context.Background(), Config{Addr: mr.Addr()}); err == nil {
		t.Fatal("expected auth error without password")
	}

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "s3cret"})
	if err != nil {
		t.Fatalf("connect with password: %v", err)
	}
	defer client.Close()
}
