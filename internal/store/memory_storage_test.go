package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	type session struct {
		ID    string `json:"id"`
		Admin bool   `json:"admin"`
	}

	want := session{ID: "abc", Admin: true}
	if err := storage.Set(ctx, "k1", want, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got session
	if err := storage.Get(ctx, "k1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestMemoryStorageMissingKey(t *testing.T) {
	storage := NewMemoryStorage()
	var out string
	if err := storage.Get(context.Background(), "missing", &out); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing key = %v, want ErrNotFound", err)
	}
}

func TestStorePrefixIsolation(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	a := New[string](storage, "a:")
	b := New[string](storage, "b:")

	if err := a.Set(ctx, "k", "from-a", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("prefixed stores share keys: err = %v, want ErrNotFound", err)
	}
	got, err := a.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "from-a" {
		t.Errorf("Get = %q, want %q", got, "from-a")
	}
}
