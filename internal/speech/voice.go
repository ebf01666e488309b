package speech

const (
	DefaultLang  = "en-US"
	DefaultRate  = 1.0
	DefaultPitch = 1.0
	MinRate      = 0.5
	MaxRate      = 2.0
)

// SupportedLanguages lists the languages offered for playback.
var SupportedLanguages = []string{"en-US", "hi-IN", "th-TH"}

// Voice is one voice reported by a synthesizer.
type Voice struct {
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// VoiceConfig is the playback configuration injected into a Player.
type VoiceConfig struct {
	Lang      string  `json:"lang"`
	Rate      float64 `json:"rate"`
	Pitch     float64 `json:"pitch"`
	VoiceName string  `json:"voiceName,omitempty"`
}

// DefaultVoiceConfig returns en-US at normal rate and pitch.
func DefaultVoiceConfig() VoiceConfig {
	return VoiceConfig{Lang: DefaultLang, Rate: DefaultRate, Pitch: DefaultPitch}
}

// Normalize fills zero values and clamps the rate into [MinRate, MaxRate].
// An unsupported language falls back to DefaultLang.
func (c VoiceConfig) Normalize() VoiceConfig {
	if !isSupported(c.Lang) {
		c.Lang = DefaultLang
	}
	switch {
	case c.Rate == 0:
		c.Rate = DefaultRate
	case c.Rate < MinRate:
		c.Rate = MinRate
	case c.Rate > MaxRate:
		c.Rate = MaxRate
	}
	if c.Pitch <= 0 {
		c.Pitch = DefaultPitch
	}
	return c
}

func isSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// SelectVoice picks the voice named in cfg, else the first voice for the
// configured language, else the first voice at all. It returns nil when
// there are no voices.
func SelectVoice(voices []Voice, cfg VoiceConfig) *Voice {
	if cfg.VoiceName != "" {
		for i := range voices {
			if voices[i].Name == cfg.VoiceName {
				return &voices[i]
			}
		}
	}
	for i := range voices {
		if voices[i].Lang == cfg.Lang {
			return &voices[i]
		}
	}
	if len(voices) > 0 {
		return &voices[0]
	}
	return nil
}

// VoicesForLang filters voices down to one language.
func VoicesForLang(voices []Voice, lang string) []Voice {
	out := make([]Voice, 0, len(voices))
	for _, v := range voices {
		if v.Lang == lang {
			out = append(out, v)
		}
	}
	return out
}
