// README: Entity value objects (dates, locations, party sizes) extracted from chat text.
package entity

import (
	"encoding/json"
	"fmt"
)

// DateFormat tags which pattern produced a DateMatch.
type DateFormat string

const (
	FormatMonthDayYearSlash DateFormat = "MM/DD/YYYY"
	FormatYearMonthDay      DateFormat = "YYYY-MM-DD"
	FormatMonthDayYearDash  DateFormat = "MM-DD-YYYY"
)

// DateMatch is one date occurrence. Groups holds the three numeric captures
// in the order the pattern captured them; Format says how to read them.
// On the wire it is the pair [["m1","m2","m3"],"FORMAT"].
type DateMatch struct {
	Groups [3]string
	Format DateFormat
}

func (d DateMatch) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{d.Groups, d.Format})
}

func (d *DateMatch) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("date match: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &d.Groups); err != nil {
		return fmt.Errorf("date match groups: %w", err)
	}
	if err := json.Unmarshal(pair[1], &d.Format); err != nil {
		return fmt.Errorf("date match format: %w", err)
	}
	return nil
}

// Year returns the year component regardless of the match format.
func (d DateMatch) Year() string {
	if d.Format == FormatYearMonthDay {
		return d.Groups[0]
	}
	return d.Groups[2]
}

func (d DateMatch) Month() string {
	if d.Format == FormatYearMonthDay {
		return d.Groups[1]
	}
	return d.Groups[0]
}

func (d DateMatch) Day() string {
	if d.Format == FormatYearMonthDay {
		return d.Groups[2]
	}
	return d.Groups[1]
}

// ISO renders the match as YYYY-MM-DD with month and day zero-padded.
// The values are not range-checked.
func (d DateMatch) ISO() string {
	return fmt.Sprintf("%s-%s-%s", d.Year(), zeroPad(d.Month()), zeroPad(d.Day()))
}

func zeroPad(s string) string {
	if len(s) >= 2 {
		return s
	}
	return "0" + s
}

// Set is the result of Extract. Empty categories are omitted when encoded.
type Set struct {
	Dates     []DateMatch `json:"dates,omitempty"`
	Locations []string    `json:"locations,omitempty"`
	Numbers   []string    `json:"numbers,omitempty"`
}
