// README: Intent labels and the per-message analysis returned to callers.
package intent

import "github.com/1234620/Travel-Based-Chatbot/internal/modules/entity"

// Label is a coarse request category.
type Label string

const (
	FlightSearch Label = "flight_search"
	HotelSearch  Label = "hotel_search"
	Itinerary    Label = "itinerary"
	General      Label = "general"
)

// NoMatchConfidence is reported when no category matched.
const NoMatchConfidence = 0.1

// Analysis is produced fresh for every message and never stored.
type Analysis struct {
	Intents    []Label    `json:"intents"`
	Entities   entity.Set `json:"entities"`
	Confidence float64    `json:"confidence"`
}

// Has reports whether l was matched.
func (a Analysis) Has(l Label) bool {
	for _, got := range a.Intents {
		if got == l {
			return true
		}
	}
	return false
}
