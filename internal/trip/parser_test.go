package trip_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/internal/trip"
)

const fullReply = "Itinerary: Day 1: Arrive. Hotels: Hotel: Grand Palace, https://booking.com/grand, /img/a.jpg " +
	"Attractions: Attraction: Big Tower, /img/b.jpg"

func TestParse_FullReply(t *testing.T) {
	got := trip.Parse(fullReply)

	assert.Equal(t, "Day 1: Arrive.", got.ItineraryText)
	require.Len(t, got.Hotels, 1)
	assert.Equal(t, trip.HotelRecord{
		Name:        "Grand Palace",
		BookingLink: "https://booking.com/grand",
		ImageURL:    "/img/a.jpg",
	}, got.Hotels[0])
	require.Len(t, got.Attractions, 1)
	assert.Equal(t, trip.AttractionRecord{Name: "Big Tower", ImageURL: "/img/b.jpg"}, got.Attractions[0])
}

func TestParse_OnlyItinerary(t *testing.T) {
	got := trip.Parse("Itinerary:\n  **Day 1: Arrive**\n* Check in\n  ")

	assert.Equal(t, "**Day 1: Arrive**\n* Check in", got.ItineraryText)
	assert.NotNil(t, got.Hotels)
	assert.Empty(t, got.Hotels)
	assert.NotNil(t, got.Attractions)
	assert.Empty(t, got.Attractions)
}

func TestParse_EmptyReply(t *testing.T) {
	got := trip.Parse("")

	assert.Equal(t, trip.NoItinerary, got.ItineraryText)
	assert.Empty(t, got.Hotels)
	assert.Empty(t, got.Attractions)
}

func TestParse_MissingHotelsLabel(t *testing.T) {
	got := trip.Parse("Itinerary: relax. Attractions: Attraction: Beach, https://img/beach.jpg Hotel: Not A Section")

	assert.Empty(t, got.Hotels)
	require.Len(t, got.Attractions, 1)
	assert.Equal(t, "Beach", got.Attractions[0].Name)
}

func TestParse_HotelDefaults(t *testing.T) {
	got := trip.Parse("Hotels: Hotel: ,,")

	require.Len(t, got.Hotels, 1)
	assert.Equal(t, trip.HotelRecord{
		Name:        "Unknown Hotel",
		BookingLink: "#",
		ImageURL:    "/images/placeholder.jpg",
	}, got.Hotels[0])
}

func TestParse_AttractionDefaults(t *testing.T) {
	got := trip.Parse("Attractions: Attraction: Old Fort Attraction: , ")

	require.Len(t, got.Attractions, 2)
	assert.Equal(t, trip.AttractionRecord{Name: "Old Fort", ImageURL: trip.PlaceholderImage}, got.Attractions[0])
	assert.Equal(t, trip.AttractionRecord{Name: trip.UnknownAttraction, ImageURL: trip.PlaceholderImage}, got.Attractions[1])
}

func TestParse_SectionsOutOfOrder(t *testing.T) {
	raw := "Attractions: Attraction: Museum, /m.jpg\n" +
		"Hotels: Hotel: Inn, https://inn.example, /i.jpg\nHotel: Lodge\n" +
		"Itinerary: Day 1 walk"

	got := trip.Parse(raw)

	assert.Equal(t, "Day 1 walk", got.ItineraryText)
	require.Len(t, got.Hotels, 2)
	assert.Equal(t, "Inn", got.Hotels[0].Name)
	assert.Equal(t, trip.HotelRecord{Name: "Lodge", BookingLink: "#", ImageURL: trip.PlaceholderImage}, got.Hotels[1])
	require.Len(t, got.Attractions, 1)
	assert.Equal(t, "/m.jpg", got.Attractions[0].ImageURL)
}

func TestParse_ExtraFieldsIgnored(t *testing.T) {
	got := trip.Parse("Hotels: Hotel: A, https://a, /a.jpg, extra, more")

	require.Len(t, got.Hotels, 1)
	assert.Equal(t, "/a.jpg", got.Hotels[0].ImageURL)
}

func TestParse_EmbeddedCommaShiftsFields(t *testing.T) {
	// Known limitation of the unquoted record format.
	got := trip.Parse("Hotels: Hotel: Taj, Mumbai, https://taj.example, /t.jpg")

	require.Len(t, got.Hotels, 1)
	assert.Equal(t, "Taj", got.Hotels[0].Name)
	assert.Equal(t, "Mumbai", got.Hotels[0].BookingLink)
	assert.Equal(t, "https://taj.example", got.Hotels[0].ImageURL)
}

func TestParse_FirstLabelOccurrenceWins(t *testing.T) {
	got := trip.Parse("Itinerary: first Hotels: Itinerary: second")

	assert.Equal(t, "first", got.ItineraryText)
	assert.Empty(t, got.Hotels)
}

func TestParse_ManyRepeatedLabelsStayLinear(t *testing.T) {
	raw := strings.Repeat("Hotels: Hotel: a ", 40000)

	start := time.Now()
	got := trip.Parse(raw)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, trip.NoItinerary, got.ItineraryText)
	require.Len(t, got.Hotels, 1)
	assert.Equal(t, "a", got.Hotels[0].Name)
}

func TestParse_LabelsAreCaseSensitive(t *testing.T) {
	got := trip.Parse("itinerary: lower case hotels: Hotel: X")

	assert.Equal(t, trip.NoItinerary, got.ItineraryText)
	assert.Empty(t, got.Hotels)
}

func TestParse_KeepsRawImageURL(t *testing.T) {
	got := trip.Parse("Attractions: Attraction: Gate, javascript:alert(1)")

	require.Len(t, got.Attractions, 1)
	assert.Equal(t, "javascript:alert(1)", got.Attractions[0].ImageURL)
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{fullReply, "", "Hotels: Hotel: ,,", "garbage without labels"}
	for _, raw := range inputs {
		assert.Equal(t, trip.Parse(raw), trip.Parse(raw), "input %q", raw)
	}
}

func TestSafeParse_MatchesParse(t *testing.T) {
	assert.Equal(t, trip.Parse(fullReply), trip.SafeParse(fullReply))
}

func TestErrorItinerary(t *testing.T) {
	got := trip.ErrorItinerary()

	assert.Equal(t, trip.ErrorItineraryText, got.ItineraryText)
	assert.NotNil(t, got.Hotels)
	assert.Empty(t, got.Hotels)
	assert.NotNil(t, got.Attractions)
	assert.Empty(t, got.Attractions)
}
