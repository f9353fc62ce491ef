// README: Itinerary generation: grounding context (flights, hotels, attractions) + Gemini, with a template fallback.
package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/maps"
	"github.com/1234620/Travel-Based-Chatbot/internal/types"
)

const maxAttractions = 5

// ItineraryPlanner implements the router's itinerary collaborator. Both llm
// and attractions are optional.
type ItineraryPlanner struct {
	llm         LLMProvider
	attractions AttractionFinder
	logger      *zap.Logger
}

func NewItineraryPlanner(llm LLMProvider, attractions AttractionFinder, logger *zap.Logger) *ItineraryPlanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItineraryPlanner{llm: llm, attractions: attractions, logger: logger}
}

// Generate builds an itinerary for req.Query. LLM failures are reported in
// the result's Error field; the returned error is only for a cancelled ctx.
func (p *ItineraryPlanner) Generate(ctx context.Context, req types.ItineraryRequest) (types.ItineraryResult, error) {
	if err := ctx.Err(); err != nil {
		return types.ItineraryResult{}, err
	}

	location := DetectLocation(req.Query)
	preferences := DetectPreferences(req.Query)

	if p.llm == nil {
		p.logger.Info("no llm configured, using template itinerary")
		return types.ItineraryResult{
			Itinerary:   fallbackItinerary(location, preferences, req),
			Location:    location,
			Preferences: preferences,
			Sources:     []string{},
		}, nil
	}

	places := p.findAttractions(ctx, location)
	answer, err := p.llm.Generate(ctx, buildPrompt(req, places))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.ItineraryResult{}, ctxErr
		}
		p.logger.Error("itinerary generation failed", zap.Error(err))
		return types.ItineraryResult{
			Itinerary: "An error occurred while generating your response.",
			Error:     err.Error(),
		}, nil
	}

	sources := make([]string, 0, len(places))
	for _, pl := range places {
		sources = append(sources, fmt.Sprintf("maps:%s#%s", pl.Name, pl.PlaceID))
	}
	return types.ItineraryResult{
		Itinerary:   answer,
		Location:    location,
		Preferences: preferences,
		Sources:     sources,
	}, nil
}

// findAttractions is best effort: errors only cost the prompt some context.
func (p *ItineraryPlanner) findAttractions(ctx context.Context, location string) []maps.Place {
	if p.attractions == nil || location == UnknownLocation {
		return nil
	}
	places, err := p.attractions.FindAttractions(ctx, location, maxAttractions)
	if err != nil {
		p.logger.Warn("attraction lookup failed", zap.String("location", location), zap.Error(err))
		return nil
	}
	return places
}

func buildPrompt(req types.ItineraryRequest, places []maps.Place) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	if len(places) > 0 {
		b.WriteString("Popular attractions at the destination:\n")
		b.WriteString(formatAttractions(places))
	} else {
		b.WriteString("No destination context available.\n")
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(req.Query)
	if req.Flights != nil {
		b.WriteString("\n\nFlight Information:\n")
		b.WriteString(formatFlightInfo(req.Flights))
	}
	if req.Hotels != nil {
		b.WriteString("\n\nHotel Information:\n")
		b.WriteString(formatHotelInfo(req.Hotels))
	}
	return b.String()
}

func fallbackItinerary(location string, preferences []string, req types.ItineraryRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌍 **Complete Travel Plan for %s**\n\n", location)

	if req.Flights != nil && len(req.Flights.Data) > 0 {
		fmt.Fprintf(&b, "✈️ **Available Flights:**\n%s\n\n", formatFlightInfo(req.Flights))
	}
	if req.Hotels != nil && len(req.Hotels.Data.Hotels) > 0 {
		fmt.Fprintf(&b, "🏨 **Available Hotels:**\n%s\n\n", formatHotelInfo(req.Hotels))
	}

	b.WriteString("📅 **5-Day Itinerary:**\n\n")
	for _, day := range templateDays {
		fmt.Fprintf(&b, "**%s**\n", day.title)
		for _, item := range day.items {
			fmt.Fprintf(&b, "• %s\n", item)
		}
		b.WriteString("\n")
	}

	if len(preferences) > 0 {
		fmt.Fprintf(&b, "🎯 **Your Preferences:** %s\n\n", strings.Join(preferences, ", "))
	}

	b.WriteString("💡 **Travel Tips:**\n")
	for _, tip := range travelTips {
		fmt.Fprintf(&b, "• %s\n", tip)
	}
	b.WriteString("\n📞 **Need Help?** Contact us for booking assistance or itinerary modifications!")
	return b.String()
}

type templateDay struct {
	title string
	items []string
}

var templateDays = []templateDay{
	{"Day 1: Arrival & Orientation", []string{"Arrive at destination airport", "Check into your hotel", "Explore the local area", "Enjoy a welcome dinner"}},
	{"Day 2: City Exploration", []string{"Visit major landmarks and attractions", "Take a city tour or hop-on-hop-off bus", "Explore local markets and shopping areas", "Experience local cuisine"}},
	{"Day 3: Cultural Immersion", []string{"Visit museums and cultural sites", "Take a guided walking tour", "Attend local events or performances", "Try authentic local experiences"}},
	{"Day 4: Adventure & Relaxation", []string{"Outdoor activities or nature exploration", "Beach time or park visits", "Spa treatments or relaxation", "Evening entertainment"}},
	{"Day 5: Departure", []string{"Final shopping or sightseeing", "Check out from hotel", "Transfer to airport", "Depart for home"}},
}

var travelTips = []string{
	"Book flights and hotels in advance for better rates",
	"Check local weather and pack accordingly",
	"Research local customs and etiquette",
	"Keep important documents and emergency contacts handy",
}
