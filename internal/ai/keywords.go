package ai

import "strings"

// UnknownLocation is reported when no known destination is mentioned.
const UnknownLocation = "Not specified"

type keywordLabel struct {
	keyword string
	label   string
}

// destinationKeywords is scanned in order; the first keyword found wins.
var destinationKeywords = []keywordLabel{
	{"paris", "Paris, France"},
	{"london", "London, UK"},
	{"new york", "New York, USA"},
	{"tokyo", "Tokyo, Japan"},
	{"dubai", "Dubai, UAE"},
	{"singapore", "Singapore"},
	{"bangkok", "Bangkok, Thailand"},
	{"rome", "Rome, Italy"},
	{"barcelona", "Barcelona, Spain"},
	{"amsterdam", "Amsterdam, Netherlands"},
	{"maldives", "Maldives"},
	{"bali", "Bali, Indonesia"},
	{"sydney", "Sydney, Australia"},
	{"mumbai", "Mumbai, India"},
	{"istanbul", "Istanbul, Turkey"},
}

type preferenceRule struct {
	tag      string
	keywords []string
}

// preferenceRules are reported in this order.
var preferenceRules = []preferenceRule{
	{"luxury", []string{"luxury", "premium", "5-star", "high-end", "exclusive", "deluxe"}},
	{"budget", []string{"budget", "cheap", "affordable", "economy", "low-cost"}},
	{"beach", []string{"beach", "coastal", "seaside", "ocean"}},
	{"cultural", []string{"cultural", "museum", "history", "heritage", "art"}},
	{"adventure", []string{"adventure", "hiking", "outdoor", "extreme", "sports"}},
	{"romantic", []string{"romantic", "honeymoon", "couple", "intimate"}},
	{"family", []string{"family", "kids", "children", "family-friendly"}},
	{"business", []string{"business", "corporate", "meeting", "conference"}},
}

// DetectLocation maps a query to a display name by substring match.
func DetectLocation(query string) string {
	lower := strings.ToLower(query)
	for _, d := range destinationKeywords {
		if strings.Contains(lower, d.keyword) {
			return d.label
		}
	}
	return UnknownLocation
}

// DetectPreferences returns the preference tags whose keywords appear in
// query. The result is never nil.
func DetectPreferences(query string) []string {
	lower := strings.ToLower(query)
	prefs := []string{}
	for _, rule := range preferenceRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				prefs = append(prefs, rule.tag)
				break
			}
		}
	}
	return prefs
}
