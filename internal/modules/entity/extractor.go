package entity

import (
	"regexp"
	"strings"
	"unicode"
)

// DatePattern pairs a date regexp with the format its captures follow.
type DatePattern struct {
	Re     *regexp.Regexp
	Format DateFormat
}

// DatePatterns are tried in order; the first one with any match wins and the
// rest are skipped.
var DatePatterns = []DatePattern{
	{Re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), Format: FormatMonthDayYearSlash},
	{Re: regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`), Format: FormatYearMonthDay},
	{Re: regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`), Format: FormatMonthDayYearDash},
}

const capitalizedRun = `([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`

// Keywords (prepositions, hotel nouns) match in any case; the place name
// itself must be capitalized.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z]{3}\b`),
	regexp.MustCompile(`\b(?i:from|to|in|at|near|for)\s+` + capitalizedRun),
	regexp.MustCompile(`\b` + capitalizedRun + `\s+(?i:hotels?|accommodation|stay)`),
	regexp.MustCompile(`\b(?i:hotels?|accommodation|stay)\s+(?i:in|at|for)\s+` + capitalizedRun),
}

var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s+(?:passenger|person|adult|child|room)`),
	regexp.MustCompile(`(\d+)\s+(?:people|persons|adults|children|rooms)`),
}

// Extract pulls dates, locations and party-size numbers out of message.
// It never fails; categories with no matches are left nil.
func Extract(message string) Set {
	return Set{
		Dates:     extractDates(message, DatePatterns),
		Locations: extractLocations(message),
		Numbers:   extractNumbers(message),
	}
}

func extractDates(message string, patterns []DatePattern) []DateMatch {
	for _, p := range patterns {
		found := p.Re.FindAllStringSubmatch(message, -1)
		if len(found) == 0 {
			continue
		}
		out := make([]DateMatch, 0, len(found))
		for _, m := range found {
			out = append(out, DateMatch{Groups: [3]string{m[1], m[2], m[3]}, Format: p.Format})
		}
		return out
	}
	return nil
}

func extractLocations(message string) []string {
	var raw []string
	for _, re := range locationPatterns {
		for _, m := range re.FindAllStringSubmatch(message, -1) {
			// Patterns without a capture group report the whole match.
			if len(m) > 1 {
				raw = append(raw, m[1])
			} else {
				raw = append(raw, m[0])
			}
		}
	}
	if len(raw) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, loc := range raw {
		clean := titleCase(strings.Join(strings.Fields(loc), " "))
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}

func extractNumbers(message string) []string {
	var out []string
	for _, re := range numberPatterns {
		for _, m := range re.FindAllStringSubmatch(message, -1) {
			out = append(out, m[1])
		}
	}
	return out
}

// titleCase upper-cases the first letter of every letter run and lower-cases
// the rest, so "JFK" becomes "Jfk" and "new york" becomes "New York".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
