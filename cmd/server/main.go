package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/trip-planner/internal/api"
	"github.com/neexbeast/trip-planner/internal/cache"
	"github.com/neexbeast/trip-planner/internal/config"
	"github.com/neexbeast/trip-planner/internal/llm"
	"github.com/neexbeast/trip-planner/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.GeminiAPIKey == "" && cfg.LLMBackend != config.BackendOpenAI {
		log.Warn("GEMINI_API_KEY not set; generation requests will fail")
	}

	base, closeGen := newGenerator(cfg)
	defer closeGen()

	generator := llm.NewResilient(base, llm.ResilientConfig{
		Timeout:       cfg.LLMTimeout,
		MaxRetries:    cfg.LLMMaxRetries,
		RatePerSecond: cfg.LLMRatePerSecond,
		Burst:         cfg.LLMBurst,
	}, log)

	replyCache, closeCache, err := newReplyCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	handlers := api.NewHandlers(generator, replyCache, render.New(render.Theme(cfg.DefaultTheme)), log)
	router := api.NewRouter(handlers, api.RouterConfig{
		Token:              cfg.APIToken,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, replyCache, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout*time.Duration(cfg.LLMMaxRetries+1) + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", "port", cfg.Port, "backend", cfg.LLMBackend, "cache", cfg.CacheBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server shut down cleanly")
	return nil
}

// newGenerator picks the model backend. The returned func releases any
// client resources.
func newGenerator(cfg config.Config) (llm.Generator, func()) {
	switch cfg.LLMBackend {
	case config.BackendSDK:
		c := llm.NewSDKClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		return c, func() { _ = c.Close() }
	case config.BackendOpenAI:
		return llm.NewOpenAIClientWithURL(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel), func() {}
	default:
		return llm.NewRESTClientWithURL(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel), func() {}
	}
}

func newReplyCache(ctx context.Context, cfg config.Config) (cache.ReplyCache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return cache.NewRedis(client, cfg.CacheTTL), func() { _ = client.Close() }, nil
	case config.CacheMemory:
		return cache.NewMemory(cfg.CacheTTL, 2*cfg.CacheTTL), func() {}, nil
	default:
		return cache.NewNoOp(), func() {}, nil
	}
}
