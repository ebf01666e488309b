package trip

// Default field values used when a record is missing data in the model reply.
const (
	NoItinerary        = "No itinerary provided."
	ErrorItineraryText = "Error generating itinerary. Please try again."
	UnknownHotel       = "Unknown Hotel"
	UnknownAttraction  = "Unknown Attraction"
	DefaultBookingLink = "#"
	PlaceholderImage   = "/images/placeholder.jpg"
)

// TripRequest holds the trip parameters submitted by the user.
type TripRequest struct {
	Destination string  `json:"destination"`
	Days        int     `json:"days"`
	People      int     `json:"people"`
	Budget      float64 `json:"budget"`
	FoodPref    string  `json:"foodPref,omitempty"`
	Emotion     string  `json:"emotion,omitempty"`
}

// Validate checks the request before it reaches the prompt builder.
func (r TripRequest) Validate() error {
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.Days <= 0 {
		return ErrInvalidDays
	}
	if r.People <= 0 {
		return ErrInvalidPeople
	}
	if r.Budget < 0 {
		return ErrNegativeBudget
	}
	return nil
}

// ValidationError reports a request field that failed validation.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingDestination ValidationError = "destination is required"
	ErrInvalidDays        ValidationError = "days must be a positive number"
	ErrInvalidPeople      ValidationError = "people must be a positive number"
	ErrNegativeBudget     ValidationError = "budget cannot be negative"
)

// HotelRecord is one hotel recommendation extracted from the reply.
type HotelRecord struct {
	Name        string `json:"name"`
	BookingLink string `json:"link"`
	ImageURL    string `json:"imageUrl"`
}

// AttractionRecord is one attraction extracted from the reply.
type AttractionRecord struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// ParsedItinerary is the structured form of a model reply.
type ParsedItinerary struct {
	ItineraryText string             `json:"itinerary"`
	Hotels        []HotelRecord      `json:"hotels"`
	Attractions   []AttractionRecord `json:"attractions"`
}

// ErrorItinerary is shown to the user when planning fails outright.
func ErrorItinerary() ParsedItinerary {
	return ParsedItinerary{
		ItineraryText: ErrorItineraryText,
		Hotels:        []HotelRecord{},
		Attractions:   []AttractionRecord{},
	}
}
