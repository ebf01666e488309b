package trip

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildPrompt renders the instruction sent to the generative model. The
// section labels and record formats it asks for are the ones Parse expects.
func BuildPrompt(req TripRequest) string {
	foodPref := strings.TrimSpace(req.FoodPref)
	if foodPref == "" {
		foodPref = "none"
	}
	mood := strings.TrimSpace(req.Emotion)
	if mood == "" {
		mood = "general"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Plan a %d-day trip for %d people to %s. ", req.Days, req.People, req.Destination)
	fmt.Fprintf(&b, "Budget: %s INR. Food preferences: %s. Mood: %s. ", formatBudget(req.Budget), foodPref, mood)
	b.WriteString("Provide the following in a structured format:\n\n")

	b.WriteString("1. " + sectionItinerary + " A detailed daily itinerary with days in bold (e.g., **Day 1: ...**) ")
	b.WriteString("and activities as bullet points (e.g., * Activity 1...).\n")

	b.WriteString("2. " + sectionHotels + " A list of specific hotel recommendations in the format:\n")
	b.WriteString("   " + markerHotel + " [Hotel Name], [Booking Link], [Image URL]\n")
	b.WriteString("   Example: " + markerHotel + " Baan Thai House, https://booking.com/baan-thai-house, " + PlaceholderImage + "\n")
	b.WriteString("   Provide at least 2 specific hotels with real names, links, and image URLs ")
	b.WriteString("(use placeholder URLs if necessary, e.g., " + PlaceholderImage + ").\n")

	b.WriteString("3. " + sectionAttractions + " A list of specific tourist attractions in the format:\n")
	b.WriteString("   " + markerAttraction + " [Attraction Name], [Image URL]\n")
	b.WriteString("   Example: " + markerAttraction + " Eiffel Tower, " + PlaceholderImage + "\n")
	b.WriteString("   Provide at least 2 specific attractions with real names and image URLs ")
	b.WriteString("(use placeholder URLs if necessary).\n\n")

	b.WriteString("Ensure all sections are clearly labeled (Itinerary, Hotels, Attractions) and follow the specified formats. ")
	b.WriteString("Do not use commas inside hotel or attraction names.")

	return b.String()
}

func formatBudget(budget float64) string {
	return strconv.FormatFloat(budget, 'f', -1, 64)
}
