package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/neexbeast/trip-planner/internal/llm"
	"github.com/neexbeast/trip-planner/internal/render"
	"github.com/neexbeast/trip-planner/internal/speech"
	"github.com/neexbeast/trip-planner/internal/trip"
)

const (
	msgPromptRequired    = "Prompt is required"
	msgItineraryRequired = "Itinerary is required"
	msgFetchFailed       = "Failed to fetch itinerary"
	msgChatFailed        = "Failed to fetch chat reply"
	msgInvalidBody       = "invalid request body"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	generator Generator
	cache     ReplyCache
	renderer  *render.Renderer
	log       *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(generator Generator, cache ReplyCache, renderer *render.Renderer, log *slog.Logger) *Handlers {
	return &Handlers{
		generator: generator,
		cache:     cache,
		renderer:  renderer,
		log:       log,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type planResponse struct {
	Success   bool                 `json:"success"`
	Prompt    string               `json:"prompt"`
	Raw       string               `json:"raw"`
	Itinerary trip.ParsedItinerary `json:"itinerary"`
	View      render.View          `json:"view"`
	Speech    string               `json:"speech"`
}

type planErrorResponse struct {
	Success   bool                 `json:"success"`
	Error     string               `json:"error"`
	Itinerary trip.ParsedItinerary `json:"itinerary"`
	View      render.View          `json:"view"`
}

type chatResponse struct {
	Success      bool            `json:"success"`
	Reply        string          `json:"reply"`
	History      []trip.ChatTurn `json:"history"`
	ContextTurns int             `json:"contextTurns"`
}

type speechResponse struct {
	Success bool   `json:"success"`
	Script  string `json:"script"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// upstreamStatus maps a generation failure to the response status.
func upstreamStatus(err error) int {
	if errors.Is(err, llm.ErrCircuitOpen) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// generate answers from the reply cache when possible and stores fresh
// replies that are long enough to be useful. Cache failures are logged and
// never fail the request.
func (h *Handlers) generate(ctx context.Context, prompt string) (string, error) {
	if reply, ok, err := h.cache.Get(ctx, prompt); err != nil {
		h.log.Warn("cache get failed", "err", err)
	} else if ok {
		return reply, nil
	}

	reply, err := h.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if reply != llm.NoResponse && trip.ValidReply(reply) {
		if err := h.cache.Set(ctx, prompt, reply); err != nil {
			h.log.Warn("cache set failed", "err", err)
		}
	}
	return reply, nil
}

// Generate handles POST /api/gemini.
// Forwards the prompt to the model and returns its raw reply text.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: msgPromptRequired})
		return
	}

	start := time.Now()
	reply, err := h.generate(r.Context(), req.Prompt)
	if err != nil {
		h.log.Error("generate failed", "err", err)
		writeJSON(w, upstreamStatus(err), errorResponse{Success: false, Error: msgFetchFailed})
		return
	}
	h.log.Info("generated reply", "duration", time.Since(start), "reply_len", len(reply))

	writeJSON(w, http.StatusOK, generateResponse{Success: true, Response: reply})
}

// PlanTrip handles POST /api/v1/trips/plan.
// Builds the prompt, generates a reply and parses it into sections. The
// theme query parameter overrides the configured theme for the view.
func (h *Handlers) PlanTrip(w http.ResponseWriter, r *http.Request) {
	theme := r.URL.Query().Get("theme")

	var req trip.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: msgInvalidBody})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: err.Error()})
		return
	}

	prompt := trip.BuildPrompt(req)

	raw, err := h.generate(r.Context(), prompt)
	if err != nil {
		h.log.Error("plan trip failed", "destination", req.Destination, "err", err)
		failed := trip.ErrorItinerary()
		writeJSON(w, upstreamStatus(err), planErrorResponse{
			Success:   false,
			Error:     msgFetchFailed,
			Itinerary: failed,
			View:      h.renderer.RenderWithTheme(failed, theme),
		})
		return
	}

	parsed := trip.SafeParse(raw)
	writeJSON(w, http.StatusOK, planResponse{
		Success:   true,
		Prompt:    prompt,
		Raw:       raw,
		Itinerary: parsed,
		View:      h.renderer.RenderWithTheme(parsed, theme),
		Speech:    speech.Script(parsed),
	})
}

// Chat handles POST /api/v1/trips/chat.
// Continues a conversation about a generated itinerary. The client owns
// the history; the response carries it back with the new turn appended.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req trip.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: msgInvalidBody})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: err.Error()})
		return
	}

	prompt, kept := trip.BuildChatPrompt(req)

	reply, err := h.generate(r.Context(), prompt)
	if err == nil && !trip.ValidReply(reply) {
		err = fmt.Errorf("%w: %q", trip.ErrShortReply, reply)
	}
	if err != nil {
		h.log.Error("chat failed", "history_turns", len(req.History), "err", err)
		writeJSON(w, upstreamStatus(err), errorResponse{Success: false, Error: msgChatFailed})
		return
	}
	if kept < len(req.History) {
		h.log.Info("chat context trimmed", "history_turns", len(req.History), "kept", kept)
	}

	history := make([]trip.ChatTurn, 0, len(req.History)+1)
	history = append(history, req.History...)
	history = append(history, trip.ChatTurn{User: strings.TrimSpace(req.Message), Assistant: reply})

	writeJSON(w, http.StatusOK, chatResponse{
		Success:      true,
		Reply:        reply,
		History:      history,
		ContextTurns: kept,
	})
}

// SpeechScript handles POST /api/v1/trips/speech.
// Returns the text a speech player would read for a parsed itinerary.
func (h *Handlers) SpeechScript(w http.ResponseWriter, r *http.Request) {
	var parsed trip.ParsedItinerary
	if err := json.NewDecoder(r.Body).Decode(&parsed); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: msgItineraryRequired})
		return
	}

	writeJSON(w, http.StatusOK, speechResponse{Success: true, Script: speech.Script(parsed)})
}

// HealthHandlerFunc returns an http.HandlerFunc that checks reply cache connectivity.
func HealthHandlerFunc(cache pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		cacheStatus := "ok"

		if err := cache.Ping(ctx); err != nil {
			log.Error("health check: cache ping failed", "err", err)
			cacheStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		writeJSON(w, status, map[string]string{
			"status": overall,
			"cache":  cacheStatus,
		})
	}
}
