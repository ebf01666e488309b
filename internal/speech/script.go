package speech

import (
	"fmt"
	"strings"

	"github.com/neexbeast/trip-planner/internal/trip"
)

const (
	NoHotelsSentence      = "No hotel recommendations available."
	NoAttractionsSentence = "No attractions available."
)

// Script flattens a parsed itinerary into the text read aloud: itinerary
// first, then hotels, then attractions, each list replaced by a fixed
// sentence when empty.
func Script(p trip.ParsedItinerary) string {
	var b strings.Builder

	b.WriteString("Here is your travel itinerary:\n")
	b.WriteString(p.ItineraryText + "\n")

	if len(p.Hotels) > 0 {
		b.WriteString("\nHotel Recommendations:\n")
		for i, h := range p.Hotels {
			fmt.Fprintf(&b, "Hotel %d: %s. Booking link: %s.\n", i+1, h.Name, h.BookingLink)
		}
	} else {
		b.WriteString("\n" + NoHotelsSentence + "\n")
	}

	if len(p.Attractions) > 0 {
		b.WriteString("\nTourist Attractions:\n")
		for i, a := range p.Attractions {
			fmt.Fprintf(&b, "Attraction %d: %s.\n", i+1, a.Name)
		}
	} else {
		b.WriteString("\n" + NoAttractionsSentence + "\n")
	}

	return b.String()
}
