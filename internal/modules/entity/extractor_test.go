package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDates(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []DateMatch
	}{
		{
			name:    "iso dates",
			message: "Find hotels in Paris for 2024-02-01 to 2024-02-05",
			want: []DateMatch{
				{Groups: [3]string{"2024", "02", "01"}, Format: FormatYearMonthDay},
				{Groups: [3]string{"2024", "02", "05"}, Format: FormatYearMonthDay},
			},
		},
		{
			name:    "us slash dates",
			message: "leaving 3/7/2025 back 3/14/2025",
			want: []DateMatch{
				{Groups: [3]string{"3", "7", "2025"}, Format: FormatMonthDayYearSlash},
				{Groups: [3]string{"3", "14", "2025"}, Format: FormatMonthDayYearSlash},
			},
		},
		{
			name:    "us dash dates",
			message: "on 12-25-2024 please",
			want: []DateMatch{
				{Groups: [3]string{"12", "25", "2024"}, Format: FormatMonthDayYearDash},
			},
		},
		{
			name:    "no dates",
			message: "sometime next month",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.message).Dates)
		})
	}
}

func TestExtractDatesFirstPatternWins(t *testing.T) {
	got := Extract("depart 2024-05-01, return 05/02/2024").Dates
	require.Len(t, got, 1)
	assert.Equal(t, FormatMonthDayYearSlash, got[0].Format)
	assert.Equal(t, "2024-05-02", got[0].ISO())

	// Reordering the list changes which format survives.
	reordered := []DatePattern{DatePatterns[1], DatePatterns[0], DatePatterns[2]}
	got = extractDates("depart 2024-05-01, return 05/02/2024", reordered)
	require.Len(t, got, 1)
	assert.Equal(t, FormatYearMonthDay, got[0].Format)
	assert.Equal(t, "2024-05-01", got[0].ISO())
}

func TestDateMatchISO(t *testing.T) {
	tests := []struct {
		match DateMatch
		want  string
	}{
		{DateMatch{Groups: [3]string{"1", "5", "2024"}, Format: FormatMonthDayYearSlash}, "2024-01-05"},
		{DateMatch{Groups: [3]string{"2024", "3", "9"}, Format: FormatYearMonthDay}, "2024-03-09"},
		{DateMatch{Groups: [3]string{"11", "30", "2023"}, Format: FormatMonthDayYearDash}, "2023-11-30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.match.ISO())
	}
}

func TestDateMatchJSONPairShape(t *testing.T) {
	set := Extract("Fly on 12/25/2024")

	raw, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dates":[[["12","25","2024"],"MM/DD/YYYY"]]}`, string(raw))

	var back Set
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, set.Dates, back.Dates)

	var bad DateMatch
	assert.Error(t, json.Unmarshal([]byte(`[["1","2","2024"]]`), &bad))
}

func TestExtractLocations(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "lower case place names are ignored",
			message: "Flights from Paris to paris",
			want:    []string{"Paris"},
		},
		{
			name:    "same city from two patterns is reported once",
			message: "Paris hotels from Paris",
			want:    []string{"Paris"},
		},
		{
			name:    "airport code and spelled name collapse after title casing",
			message: "JFK hotel for Jfk",
			want:    []string{"Jfk"},
		},
		{
			name:    "airport codes are title cased",
			message: "I need a flight from JFK to LAX on 2024-01-15",
			want:    []string{"Jfk", "Lax"},
		},
		{
			name:    "multi word city after preposition",
			message: "Plan a trip to New York",
			want:    []string{"New York"},
		},
		{
			name:    "hotel noun passes keep overlapping matches",
			message: "Find hotels in Paris for 2024-02-01 to 2024-02-05",
			want:    []string{"Paris", "Find"},
		},
		{
			name:    "city before hotel noun",
			message: "cheap Tokyo hotels please",
			want:    []string{"Tokyo"},
		},
		{
			name:    "capitalized preposition",
			message: "From Rome with love",
			want:    []string{"Rome"},
		},
		{
			name:    "nothing capitalized",
			message: "show me something nice",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.message).Locations)
		})
	}
}

func TestExtractNumbers(t *testing.T) {
	// "adults" satisfies both passes, so the count is reported twice.
	assert.Equal(t, []string{"2", "1", "2"}, Extract("2 adults and 1 room").Numbers)
	assert.Equal(t, []string{"4"}, Extract("we are 4 people").Numbers)
	assert.Nil(t, Extract("just me").Numbers)
}

func TestExtractEmptyMessage(t *testing.T) {
	assert.Equal(t, Set{}, Extract(""))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "New York", titleCase("new YORK"))
	assert.Equal(t, "O'Hare", titleCase("o'hare"))
	assert.Equal(t, "", titleCase(""))
}

