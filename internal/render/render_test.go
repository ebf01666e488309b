package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/internal/render"
	"github.com/neexbeast/trip-planner/internal/speech"
	"github.com/neexbeast/trip-planner/internal/trip"
)

func TestSafeImageURL(t *testing.T) {
	r := render.New(render.ThemeLight)

	tests := []struct {
		in   string
		want string
	}{
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"/images/hotel.jpg", "/images/hotel.jpg"},
		{"../images/tower.jpg", "../images/tower.jpg"},
		{"javascript:alert(1)", trip.PlaceholderImage},
		{"images/relative.jpg", trip.PlaceholderImage},
		{"", trip.PlaceholderImage},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, r.SafeImageURL(tt.in))
		})
	}
}

func TestLines(t *testing.T) {
	got := render.Lines("**Day 1: Arrival**\n\n* Check in\nWalk along the river.\n   \n")

	require.Len(t, got, 3)
	assert.Equal(t, render.Line{Kind: render.LineHeading, Text: "Day 1: Arrival"}, got[0])
	assert.Equal(t, render.Line{Kind: render.LineBullet, Text: "Check in"}, got[1])
	assert.Equal(t, render.Line{Kind: render.LineText, Text: "Walk along the river."}, got[2])
}

func TestLines_Empty(t *testing.T) {
	got := render.Lines("")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRender_Cards(t *testing.T) {
	r := render.New(render.ThemeDark)
	p := trip.ParsedItinerary{
		ItineraryText: "Day 1",
		Hotels: []trip.HotelRecord{
			{Name: "Grand", BookingLink: "https://b.com/g", ImageURL: "ftp://bad"},
			{Name: "", BookingLink: "#", ImageURL: "/img/h.jpg"},
		},
		Attractions: []trip.AttractionRecord{
			{Name: "Tower", ImageURL: "../img/t.jpg"},
			{Name: "", ImageURL: "https://img/x.jpg"},
		},
	}

	v := r.Render(p)

	assert.Equal(t, render.ThemeDark, v.Theme)
	require.Len(t, v.Hotels, 2)
	assert.Equal(t, render.Card{Title: "Grand", Link: "https://b.com/g", ImageURL: trip.PlaceholderImage, Alt: "Grand"}, v.Hotels[0])
	assert.Equal(t, render.HotelAlt, v.Hotels[1].Alt)
	assert.Equal(t, "/img/h.jpg", v.Hotels[1].ImageURL)

	require.Len(t, v.Attractions, 2)
	assert.Equal(t, "../img/t.jpg", v.Attractions[0].ImageURL)
	assert.Empty(t, v.Attractions[0].Link)
	assert.Equal(t, render.AttractionAlt, v.Attractions[1].Alt)

	assert.Empty(t, v.HotelsMessage)
	assert.Empty(t, v.AttractionsMessage)
}

func TestRender_EmptyStateMessages(t *testing.T) {
	v := render.New(render.ThemeLight).Render(trip.ErrorItinerary())

	assert.Equal(t, render.NoHotelsMessage, v.HotelsMessage)
	assert.Equal(t, render.NoAttractionsMessage, v.AttractionsMessage)
	assert.Equal(t, "No hotel recommendations available.", v.HotelsMessage)
	assert.Equal(t, speech.NoHotelsSentence, v.HotelsMessage, "page and speech agree")
	assert.Equal(t, speech.NoAttractionsSentence, v.AttractionsMessage)
	assert.NotNil(t, v.Hotels)
	assert.NotNil(t, v.Attractions)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, trip.ErrorItineraryText, v.Lines[0].Text)
}

func TestRenderWithTheme_Override(t *testing.T) {
	r := render.New(render.ThemeLight)
	p := trip.ParsedItinerary{}

	assert.Equal(t, render.ThemeDark, r.RenderWithTheme(p, "dark").Theme)
	assert.Equal(t, render.ThemeDark, r.RenderWithTheme(p, " DARK ").Theme)
	assert.Equal(t, render.ThemeLight, r.RenderWithTheme(p, "sepia").Theme)
	assert.Equal(t, render.ThemeLight, r.RenderWithTheme(p, "").Theme)
}

func TestNew_UnknownThemeFallsBackToLight(t *testing.T) {
	assert.Equal(t, render.ThemeLight, render.New("neon").Theme)
}
