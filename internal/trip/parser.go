package trip

import (
	"strings"
)

const (
	sectionItinerary   = "Itinerary:"
	sectionHotels      = "Hotels:"
	sectionAttractions = "Attractions:"

	markerHotel      = "Hotel:"
	markerAttraction = "Attraction:"
)

var sectionLabels = []string{sectionItinerary, sectionHotels, sectionAttractions}

// Parse splits a free-text model reply into an itinerary, hotels and
// attractions. It never fails: a missing or malformed section degrades to
// its fallback value.
//
// Records are comma-delimited without quoting, so a name containing a comma
// shifts the remaining fields. This is a best-effort heuristic; BuildPrompt
// asks the model to keep commas out of names.
func Parse(raw string) ParsedItinerary {
	sections := splitSections(raw)

	itinerary := strings.TrimSpace(sections[sectionItinerary])
	if itinerary == "" {
		itinerary = NoItinerary
	}

	return ParsedItinerary{
		ItineraryText: itinerary,
		Hotels:        parseHotels(sections[sectionHotels]),
		Attractions:   parseAttractions(sections[sectionAttractions]),
	}
}

// SafeParse behaves like Parse but turns an unexpected panic into the
// generic error itinerary.
func SafeParse(raw string) (parsed ParsedItinerary) {
	defer func() {
		if r := recover(); r != nil {
			parsed = ErrorItinerary()
		}
	}()
	return Parse(raw)
}

type labelHit struct {
	label string
	start int
}

// splitSections maps each section label to the text between its first
// occurrence and the next label occurrence of any kind.
func splitSections(raw string) map[string]string {
	// next[i] is the position of sectionLabels[i] at or after the scan
	// position, or -1. Only the label just consumed needs searching again.
	next := make([]int, len(sectionLabels))
	for i, l := range sectionLabels {
		next[i] = strings.Index(raw, l)
	}

	var hits []labelHit
	for {
		best := -1
		for i, p := range next {
			if p >= 0 && (best < 0 || p < next[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		label := sectionLabels[best]
		start := next[best]
		hits = append(hits, labelHit{label: label, start: start})

		from := start + len(label)
		if i := strings.Index(raw[from:], label); i >= 0 {
			next[best] = from + i
		} else {
			next[best] = -1
		}
	}

	sections := make(map[string]string, len(sectionLabels))
	for i, h := range hits {
		if _, seen := sections[h.label]; seen {
			continue
		}
		end := len(raw)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		sections[h.label] = raw[h.start+len(h.label) : end]
	}
	return sections
}

func parseHotels(section string) []HotelRecord {
	hotels := []HotelRecord{}
	for _, entry := range splitRecords(section, markerHotel) {
		fields := splitFields(entry, 3)
		hotels = append(hotels, HotelRecord{
			Name:        orDefault(fields[0], UnknownHotel),
			BookingLink: orDefault(fields[1], DefaultBookingLink),
			ImageURL:    orDefault(fields[2], PlaceholderImage),
		})
	}
	return hotels
}

func parseAttractions(section string) []AttractionRecord {
	attractions := []AttractionRecord{}
	for _, entry := range splitRecords(section, markerAttraction) {
		fields := splitFields(entry, 2)
		attractions = append(attractions, AttractionRecord{
			Name:     orDefault(fields[0], UnknownAttraction),
			ImageURL: orDefault(fields[1], PlaceholderImage),
		})
	}
	return attractions
}

// splitRecords splits a section on its sub-marker and drops blank fragments.
func splitRecords(section, marker string) []string {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil
	}

	var entries []string
	for _, entry := range strings.Split(section, marker) {
		if strings.TrimSpace(entry) != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// splitFields returns exactly n trimmed comma-separated fields; missing ones
// are empty and anything past n is dropped.
func splitFields(entry string, n int) []string {
	fields := make([]string, n)
	for i, f := range strings.Split(entry, ",") {
		if i >= n {
			break
		}
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
