package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process ReplyCache with per-entry expiry.
type Memory struct {
	store *gocache.Cache
}

// NewMemory constructs a Memory cache; expired entries are purged every
// cleanup interval.
func NewMemory(ttl, cleanup time.Duration) *Memory {
	return &Memory{store: gocache.New(ttl, cleanup)}
}

// Get returns the unexpired reply stored for prompt.
func (m *Memory) Get(_ context.Context, prompt string) (string, bool, error) {
	v, ok := m.store.Get(key(prompt))
	if !ok {
		return "", false, nil
	}
	reply, ok := v.(string)
	return reply, ok, nil
}

// Set stores reply for prompt with the cache TTL.
func (m *Memory) Set(_ context.Context, prompt, reply string) error {
	m.store.SetDefault(key(prompt), reply)
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Len reports the number of cached entries, expired ones included until
// the next cleanup.
func (m *Memory) Len() int { return m.store.ItemCount() }
