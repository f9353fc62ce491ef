package intent

import (
	"strings"

	"github.com/1234620/Travel-Based-Chatbot/internal/modules/entity"
)

type category struct {
	label    Label
	keywords []string
}

// categories is the fixed enumeration order results are reported in.
var categories = []category{
	{FlightSearch, []string{"flight", "fly", "airplane", "airline", "departure", "arrival"}},
	{HotelSearch, []string{"hotel", "accommodation", "stay", "room", "booking", "reservation"}},
	{Itinerary, []string{"itinerary", "plan", "schedule", "trip", "vacation", "travel", "visit"}},
	{General, []string{"hello", "hi", "help", "what can you do", "capabilities"}},
}

// Classify matches message against every category's keywords as plain
// substrings of the lower-cased text, then attaches the extracted entities.
// "hi" matches inside words such as "this" or "shipping"; that is accepted.
func Classify(message string) Analysis {
	lower := strings.ToLower(message)

	intents := make([]Label, 0, len(categories))
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				intents = append(intents, c.label)
				break
			}
		}
	}

	confidence := NoMatchConfidence
	if len(intents) > 0 {
		confidence = float64(len(intents)) / float64(len(categories))
	}

	return Analysis{
		Intents:    intents,
		Entities:   entity.Extract(message),
		Confidence: confidence,
	}
}
