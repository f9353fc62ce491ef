package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1234620/Travel-Based-Chatbot/internal/types"
)

const maxListed = 3

const (
	replyCapabilities = "Hello! I'm your AI travel assistant. I can help you with:\n\n" +
		"✈️ **Flight Searches**: Find available flights between airports\n" +
		"🏨 **Hotel Bookings**: Search for accommodations at your destination\n" +
		"📋 **Travel Itineraries**: Create personalized travel plans\n\n" +
		"Just tell me what you need! For example:\n" +
		"- \"I need a flight from JFK to LAX on 2024-01-15\"\n" +
		"- \"Find hotels in Paris for 2024-02-01 to 2024-02-05\"\n" +
		"- \"Create a luxury itinerary for a trip to Tokyo\"\n\n" +
		"What can I help you with today?"

	replyFallback        = "I can help you with flight searches, hotel bookings, and travel itineraries. What would you like to do?"
	replyProcessingError = "I apologize, but I encountered an error processing your request. Please try again."

	replyNeedFlightEndpoints = "I need both origin and destination airports for flight searches. Please specify them."
	replyNoFlightsFmt        = "No flights found from %s to %s on %s. Please try different dates or routes."
	replyFlightError         = "I encountered an error searching for flights. Please try again with a different query."

	replyNeedHotelDestination = "I need a destination for hotel searches. Please specify where you'd like to stay."
	replyUnsupportedCityFmt   = "Sorry, I don't have hotel data for %s. Please try a major city like New York, London, Paris, or Tokyo."
	replyNoHotelsFmt          = "No hotels found in %s for the specified dates. Please try different dates or location."
	replyHotelError           = "I encountered an error searching for hotels. Please try again with a different query."

	replyItineraryFailedPrefix = "I encountered an error generating your itinerary: "
	replyItineraryError        = "I encountered an error generating your itinerary. Please try again with a different query."
	replyBookingPrompt         = "Would you like me to help you book any of these flights or hotels?"
)

const na = "N/A"

func orNA(s string) string {
	if s == "" {
		return na
	}
	return s
}

func floatOrNA(v *float64) string {
	if v == nil {
		return na
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatFlights(offers []types.FlightOffer, origin, dest, date string) string {
	if len(offers) > maxListed {
		offers = offers[:maxListed]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d flights from %s to %s on %s:\n\n", len(offers), origin, dest, date)
	for i, o := range offers {
		seg, _ := o.FirstSegment()
		currency := o.Price.Currency
		if currency == "" {
			currency = "USD"
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, orNA(seg.CarrierCode), orNA(seg.Number))
		fmt.Fprintf(&b, "   Price: %s %s\n\n", orNA(o.Price.Total), currency)
	}
	return b.String()
}

func formatHotels(hotels []types.HotelOffer, dest, checkIn, checkOut string) string {
	if len(hotels) > maxListed {
		hotels = hotels[:maxListed]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d hotels in %s from %s to %s:\n\n", len(hotels), dest, checkIn, checkOut)
	for i, h := range hotels {
		p := h.Property
		currency := p.PriceBreakdown.GrossPrice.Currency
		if currency == "" {
			currency = "USD"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, orNA(p.Name))
		fmt.Fprintf(&b, "   Rating: %s/10\n", floatOrNA(p.ReviewScore))
		fmt.Fprintf(&b, "   Price: %s %s\n\n", floatOrNA(p.PriceBreakdown.GrossPrice.Value), currency)
	}
	return b.String()
}

func formatItinerary(res types.ItineraryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's your personalized itinerary for %s:\n\n%s\n\n", res.Location, res.Itinerary)
	if len(res.Preferences) > 0 {
		fmt.Fprintf(&b, "Based on your preferences: %s\n\n", strings.Join(res.Preferences, ", "))
	}
	b.WriteString(replyBookingPrompt)
	return b.String()
}
