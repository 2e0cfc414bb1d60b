package common

import (
	"errors"
	"testing"
)

func TestTryValue(t *testing.T) {
	val, err := Try(func() (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Try returned error: %v", err)
	}
	if val != 42 {
		t.Errorf("Try returned %d, want 42", val)
	}
}

func TestTryError(t *testing.T) {
	sentinel := errors.New("lookup failed")
	val, err := Try(func() (*int, error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Try error = %v, want %v", err, sentinel)
	}
	if val != nil {
		t.Errorf("Try returned non-zero value %v alongside error", val)
	}
}

func TestTryPanicError(t *testing.T) {
	sentinel := errors.New("collaborator blew up")
	val, err := Try(func() (string, error) {
		panic(sentinel)
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Try error = %v, want %v", err, sentinel)
	}
	if val != "" {
		t.Errorf("Try returned non-zero value %q alongside error", val)
	}
}

func TestTryPanicValue(t *testing.T) {
	_, err := Try(func() (int, error) {
		panic("boom")
	})
	if err == nil {
		t.Fatal("Try did not convert panic to error")
	}
}
