package render

import (
	"strings"

	"github.com/neexbeast/trip-planner/internal/trip"
)

// Theme selects the colour scheme of a rendered view.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	HotelAlt      = "Hotel image"
	AttractionAlt = "Attraction image"

	NoHotelsMessage      = "No hotel recommendations available."
	NoAttractionsMessage = "No attractions available."
)

// DefaultImagePrefixes are the URL prefixes an image may start with to be
// shown as-is.
var DefaultImagePrefixes = []string{"http", "/", "../"}

// ParseTheme returns the theme named by s, or fallback when s is not a
// known theme.
func ParseTheme(s string, fallback Theme) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return fallback
	}
}

// LineKind classifies one line of itinerary text.
type LineKind string

const (
	LineHeading LineKind = "heading"
	LineBullet  LineKind = "bullet"
	LineText    LineKind = "text"
)

// Line is one classified line of the itinerary text.
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
}

// Card displays one hotel or attraction.
type Card struct {
	Title    string `json:"title"`
	Link     string `json:"link,omitempty"`
	ImageURL string `json:"imageUrl"`
	Alt      string `json:"alt"`
}

// View is the display model for one itinerary.
type View struct {
	Theme              Theme  `json:"theme"`
	Lines              []Line `json:"lines"`
	Hotels             []Card `json:"hotels"`
	Attractions        []Card `json:"attractions"`
	HotelsMessage      string `json:"hotelsMessage,omitempty"`
	AttractionsMessage string `json:"attractionsMessage,omitempty"`
}

// Renderer turns a parsed itinerary into a View.
type Renderer struct {
	Theme                Theme
	PlaceholderImage     string
	AllowedImagePrefixes []string
}

// New returns a Renderer using the default placeholder and image prefixes.
func New(theme Theme) *Renderer {
	return &Renderer{
		Theme:                ParseTheme(string(theme), ThemeLight),
		PlaceholderImage:     trip.PlaceholderImage,
		AllowedImagePrefixes: DefaultImagePrefixes,
	}
}

// SafeImageURL returns raw when it starts with an allowed prefix and the
// placeholder otherwise.
func (r *Renderer) SafeImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, p := range r.AllowedImagePrefixes {
		if strings.HasPrefix(raw, p) {
			return raw
		}
	}
	return r.PlaceholderImage
}

// Render builds the view using the renderer's own theme.
func (r *Renderer) Render(p trip.ParsedItinerary) View {
	return r.RenderWithTheme(p, "")
}

// RenderWithTheme builds the view, letting a non-empty theme override the
// configured one. Unknown themes fall back to the configured theme.
func (r *Renderer) RenderWithTheme(p trip.ParsedItinerary, theme string) View {
	v := View{
		Theme:       ParseTheme(theme, r.Theme),
		Lines:       Lines(p.ItineraryText),
		Hotels:      make([]Card, 0, len(p.Hotels)),
		Attractions: make([]Card, 0, len(p.Attractions)),
	}

	for _, h := range p.Hotels {
		v.Hotels = append(v.Hotels, Card{
			Title:    h.Name,
			Link:     h.BookingLink,
			ImageURL: r.SafeImageURL(h.ImageURL),
			Alt:      altText(h.Name, HotelAlt),
		})
	}
	for _, a := range p.Attractions {
		v.Attractions = append(v.Attractions, Card{
			Title:    a.Name,
			ImageURL: r.SafeImageURL(a.ImageURL),
			Alt:      altText(a.Name, AttractionAlt),
		})
	}

	if len(v.Hotels) == 0 {
		v.HotelsMessage = NoHotelsMessage
	}
	if len(v.Attractions) == 0 {
		v.AttractionsMessage = NoAttractionsMessage
	}
	return v
}

// Lines classifies itinerary text line by line. Blank lines are dropped,
// a line containing "**" becomes a heading with the markers stripped and
// a line starting with "*" becomes a bullet.
func Lines(text string) []Line {
	out := []Line{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case strings.Contains(line, "**"):
			out = append(out, Line{Kind: LineHeading, Text: strings.TrimSpace(strings.ReplaceAll(line, "**", ""))})
		case strings.HasPrefix(line, "*"):
			out = append(out, Line{Kind: LineBullet, Text: strings.TrimSpace(strings.TrimPrefix(line, "*"))})
		default:
			out = append(out, Line{Kind: LineText, Text: line})
		}
	}
	return out
}

func altText(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
