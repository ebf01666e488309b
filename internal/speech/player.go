package speech

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/neexbeast/trip-planner/internal/trip"
)

// ErrNoSynthesizer is returned by Play when the player has no synthesizer.
var ErrNoSynthesizer = errors.New("speech: no synthesizer configured")

// Utterance is a single request handed to a Synthesizer.
type Utterance struct {
	ID    string
	Text  string
	Lang  string
	Rate  float64
	Pitch float64
	Voice *Voice
}

// Synthesizer is the text-to-speech backend. Speak blocks until the
// utterance finishes, fails, or ctx is cancelled.
type Synthesizer interface {
	Voices() []Voice
	Speak(ctx context.Context, u Utterance) error
}

// EventKind identifies a playback event.
type EventKind int

const (
	EventVoicesChanged EventKind = iota
	EventStarted
	EventEnded
	EventFailed
	EventCancelled
)

func (k EventKind) String() string {
	switch k {
	case EventVoicesChanged:
		return "voices_changed"
	case EventStarted:
		return "started"
	case EventEnded:
		return "ended"
	case EventFailed:
		return "failed"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further events follow for the utterance.
func (k EventKind) Terminal() bool {
	return k == EventEnded || k == EventFailed || k == EventCancelled
}

// Event is delivered to a Listener. UtteranceID is empty for
// EventVoicesChanged; Err is set only for EventFailed.
type Event struct {
	Kind        EventKind
	UtteranceID string
	Voices      []Voice
	Err         error
}

// Listener receives player events. It is called outside the player's lock
// and may call back into the player.
type Listener func(Event)

type utterance struct {
	id     string
	cancel context.CancelFunc
	done   bool
}

// Player drives a Synthesizer with at most one active utterance. Every
// utterance gets exactly one Started and one terminal event.
type Player struct {
	mu       sync.Mutex
	synth    Synthesizer
	cfg      VoiceConfig
	voice    *Voice
	listener Listener
	active   *utterance
}

// NewPlayer constructs a Player. A nil listener discards events.
func NewPlayer(synth Synthesizer, cfg VoiceConfig, listener Listener) *Player {
	if listener == nil {
		listener = func(Event) {}
	}
	p := &Player{
		synth:    synth,
		cfg:      cfg.Normalize(),
		listener: listener,
	}
	if synth != nil {
		p.voice = SelectVoice(synth.Voices(), p.cfg)
	}
	return p
}

// Config returns the normalized playback configuration.
func (p *Player) Config() VoiceConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Voice returns the currently selected voice, or nil.
func (p *Player) Voice() *Voice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.voice
}

// SetConfig replaces the configuration and reselects the voice. It does
// not affect an utterance already playing.
func (p *Player) SetConfig(cfg VoiceConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg.Normalize()
	if p.synth != nil {
		p.voice = SelectVoice(p.synth.Voices(), p.cfg)
	}
}

// RefreshVoices re-reads the synthesizer's voice list, reselects the voice
// and emits EventVoicesChanged.
func (p *Player) RefreshVoices() {
	p.mu.Lock()
	if p.synth == nil {
		p.mu.Unlock()
		return
	}
	voices := p.synth.Voices()
	p.voice = SelectVoice(voices, p.cfg)
	p.mu.Unlock()

	p.listener(Event{Kind: EventVoicesChanged, Voices: voices})
}

// Speaking reports whether an utterance is in flight.
func (p *Player) Speaking() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active != nil
}

// Play cancels any in-flight utterance and starts reading the script for
// the itinerary. It returns the new utterance ID.
func (p *Player) Play(itinerary trip.ParsedItinerary) (string, error) {
	return p.PlayText(Script(itinerary))
}

// PlayText is Play for an arbitrary script.
func (p *Player) PlayText(text string) (string, error) {
	if p.synth == nil {
		return "", ErrNoSynthesizer
	}

	ctx, cancel := context.WithCancel(context.Background())
	next := &utterance{id: uuid.NewString(), cancel: cancel}

	p.mu.Lock()
	prev := p.takeActiveLocked()
	p.active = next
	req := Utterance{
		ID:    next.id,
		Text:  text,
		Lang:  p.cfg.Lang,
		Rate:  p.cfg.Rate,
		Pitch: p.cfg.Pitch,
		Voice: p.voice,
	}
	p.mu.Unlock()

	if prev != nil {
		p.listener(Event{Kind: EventCancelled, UtteranceID: prev.id})
	}
	p.listener(Event{Kind: EventStarted, UtteranceID: next.id})

	go p.run(ctx, next, req)

	return next.id, nil
}

// Stop cancels the in-flight utterance, if any. It reports whether one
// was cancelled.
func (p *Player) Stop() bool {
	p.mu.Lock()
	prev := p.takeActiveLocked()
	p.mu.Unlock()

	if prev == nil {
		return false
	}
	p.listener(Event{Kind: EventCancelled, UtteranceID: prev.id})
	return true
}

// takeActiveLocked marks the active utterance as finished and cancels it.
func (p *Player) takeActiveLocked() *utterance {
	prev := p.active
	if prev == nil {
		return nil
	}
	p.active = nil
	prev.done = true
	prev.cancel()
	return prev
}

func (p *Player) run(ctx context.Context, u *utterance, req Utterance) {
	err := p.synth.Speak(ctx, req)

	kind := EventEnded
	switch {
	case ctx.Err() != nil:
		kind = EventCancelled
	case err != nil:
		kind = EventFailed
	}

	p.mu.Lock()
	if u.done {
		p.mu.Unlock()
		return
	}
	u.done = true
	if p.active == u {
		p.active = nil
	}
	p.mu.Unlock()
	u.cancel()

	ev := Event{Kind: kind, UtteranceID: u.id}
	if kind == EventFailed {
		ev.Err = err
	}
	p.listener(ev)
}
