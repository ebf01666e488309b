package trip

import (
	"errors"
	"fmt"
	"strings"
)

// ChatSystemPrompt frames every follow-up conversation about a generated
// itinerary.
const ChatSystemPrompt = `You are a helpful travel planning assistant that creates detailed trip itineraries.
Your goal is to create personalized travel plans based on user preferences.
When creating itineraries, include:
- Day-by-day breakdown of activities
- Recommended accommodations
- Food and restaurant suggestions
- Transportation options
- Estimated costs
- Local tips and insights
- Practical information like weather considerations and cultural etiquette

Only ask for one piece of information at a time. Wait for the user to respond before asking another question.`

const (
	// MaxChatContext bounds the length of a chat prompt. Older turns are
	// dropped first; the system prompt, itinerary and new message stay.
	MaxChatContext = 10000

	// MinReplyLength is the shortest trimmed reply accepted from the model.
	MinReplyLength = 10
)

// ErrShortReply reports a model reply too short to be a real answer.
var ErrShortReply = errors.New("empty or very short response from model")

const (
	ErrMissingItinerary ValidationError = "itinerary is required"
	ErrMissingMessage   ValidationError = "message is required"
)

// ChatTurn is one completed exchange in a follow-up conversation.
type ChatTurn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// ChatRequest asks the model to refine an already generated itinerary.
// The client keeps the history and sends it back on every turn.
type ChatRequest struct {
	Itinerary string     `json:"itinerary"`
	History   []ChatTurn `json:"history"`
	Message   string     `json:"message"`
}

// Validate checks the request before a chat prompt is built.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Itinerary) == "" {
		return ErrMissingItinerary
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrMissingMessage
	}
	return nil
}

// BuildChatPrompt renders the conversation context for the next reply and
// reports how many history turns it kept. When the context would exceed
// MaxChatContext the oldest turns are dropped until it fits or none remain.
func BuildChatPrompt(req ChatRequest) (string, int) {
	header := ChatSystemPrompt + "\n\nI've created the following itinerary:\n\n" + strings.TrimSpace(req.Itinerary) + "\n\n"
	tail := "User: " + strings.TrimSpace(req.Message) + "\nAssistant: "

	turns := make([]string, len(req.History))
	size := len(header) + len(tail)
	for i, t := range req.History {
		turns[i] = fmt.Sprintf("User: %s\nAssistant: %s\n\n", strings.TrimSpace(t.User), strings.TrimSpace(t.Assistant))
		size += len(turns[i])
	}

	first := 0
	for first < len(turns) && size > MaxChatContext {
		size -= len(turns[first])
		first++
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(header)
	for _, t := range turns[first:] {
		b.WriteString(t)
	}
	b.WriteString(tail)

	return b.String(), len(turns) - first
}

// ValidReply reports whether reply is long enough to be shown to the user.
func ValidReply(reply string) bool {
	return len(strings.TrimSpace(reply)) >= MinReplyLength
}
