package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// ReplyCache stores raw model replies keyed by the exact prompt.
// A miss is reported as ok == false with a nil error.
type ReplyCache interface {
	Get(ctx context.Context, prompt string) (reply string, ok bool, err error)
	Set(ctx context.Context, prompt, reply string) error
	Ping(ctx context.Context) error
}

// key returns the storage key for a prompt.
func key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "reply:" + hex.EncodeToString(sum[:])
}

// NoOp never stores anything.
type NoOp struct{}

// NewNoOp returns a cache that always misses.
func NewNoOp() *NoOp { return &NoOp{} }

func (NoOp) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (NoOp) Set(context.Context, string, string) error { return nil }

func (NoOp) Ping(context.Context) error { return nil }
