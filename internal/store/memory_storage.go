package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/storage/memory/v2"
)

// MemoryStorage backs the session registry when no redis is configured.
// Single process only; sessions do not survive a restart.
type MemoryStorage struct {
	mem *memory.Storage
}

func (s *MemoryStorage) Get(ctx context.Context, key string, val any) error {
	raw, err := s.mem.Get(key)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return ErrNotFound
	}
	return json.Unmarshal(raw, val)
}

func (s *MemoryStorage) Set(ctx context.Context, key string, val any, expiresIn time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if expiresIn < 0 {
		expiresIn = 0
	}
	return s.mem.Set(key, raw, expiresIn)
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	return s.mem.Delete(key)
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		mem: memory.New(),
	}
}
