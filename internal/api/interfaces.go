package api

import (
	"context"
)

// Generator defines the language model call needed by handlers.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ReplyCache defines the reply cache operations needed by handlers.
type ReplyCache interface {
	Get(ctx context.Context, prompt string) (string, bool, error)
	Set(ctx context.Context, prompt, reply string) error
}

type pinger interface {
	Ping(ctx context.Context) error
}
