package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1234620/Travel-Based-Chatbot/internal/maps"
	"github.com/1234620/Travel-Based-Chatbot/internal/types"
)

const (
	maxFlightsInContext = 5
	maxHotelsInContext  = 5
	na                  = "N/A"
)

func orNA(s string) string {
	if s == "" {
		return na
	}
	return s
}

// clockTime reduces "2024-01-15T08:05:00" to "08:05".
func clockTime(at string) string {
	if at == "" {
		return na
	}
	if i := strings.IndexByte(at, 'T'); i >= 0 {
		rest := at[i+1:]
		if len(rest) > 5 {
			rest = rest[:5]
		}
		return rest
	}
	return at
}

func formatFlightInfo(res *types.FlightSearchResult) string {
	if res == nil || len(res.Data) == 0 {
		return "No flight information available."
	}

	var b strings.Builder
	for i, offer := range res.Data {
		if i == maxFlightsInContext {
			break
		}
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}
		itin := offer.Itineraries[0]
		first, last := itin.Segments[0], itin.Segments[len(itin.Segments)-1]
		currency := offer.Price.Currency
		if currency == "" {
			currency = "USD"
		}

		fmt.Fprintf(&b, "**%d. %s %s**\n", i+1, orNA(first.CarrierCode), orNA(first.Number))
		fmt.Fprintf(&b, "   🛫 %s → %s\n", orNA(first.Departure.IATACode), orNA(last.Arrival.IATACode))
		fmt.Fprintf(&b, "   ⏰ %s → %s\n", clockTime(first.Departure.At), clockTime(last.Arrival.At))
		fmt.Fprintf(&b, "   💰 %s %s\n", orNA(offer.Price.Total), currency)
		fmt.Fprintf(&b, "   ⏱️ Duration: %s\n", orNA(itin.Duration))
		fmt.Fprintf(&b, "   🛩️ Aircraft: %s\n\n", orNA(first.Aircraft.Code))
	}
	return b.String()
}

func formatHotelInfo(res *types.HotelSearchResult) string {
	if res == nil || len(res.Data.Hotels) == 0 {
		return "No hotel information available."
	}

	var b strings.Builder
	for i, hotel := range res.Data.Hotels {
		if i == maxHotelsInContext {
			break
		}
		p := hotel.Property

		rating := "No rating available"
		if p.ReviewScore != nil && *p.ReviewScore > 0 {
			rating = formatNumber(*p.ReviewScore) + "/10"
			if p.ReviewCount > 0 {
				rating += fmt.Sprintf(" (%d reviews)", p.ReviewCount)
			}
		}
		price := na
		if p.PriceBreakdown.GrossPrice.Value != nil {
			price = formatNumber(*p.PriceBreakdown.GrossPrice.Value)
		}
		currency := p.PriceBreakdown.GrossPrice.Currency
		if currency == "" {
			currency = "USD"
		}
		stars := ""
		if p.QualityClass > 0 {
			stars = strings.Repeat("⭐", min(p.QualityClass, 5))
		}

		fmt.Fprintf(&b, "**%d. %s**\n", i+1, orNA(p.Name))
		fmt.Fprintf(&b, "   %s %s\n", stars, rating)
		fmt.Fprintf(&b, "   💰 %s %s per night\n", price, currency)
		fmt.Fprintf(&b, "   🏨 Quality: %d stars\n\n", p.QualityClass)
	}
	return b.String()
}

func formatAttractions(places []maps.Place) string {
	var b strings.Builder
	for _, p := range places {
		fmt.Fprintf(&b, "- %s (%s), rated %.1f by %d visitors\n", p.Name, p.Address, p.Rating, p.UserRatingsTotal)
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
