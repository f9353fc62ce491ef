package service

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/metrics"
	"github.com/1234620/Travel-Based-Chatbot/internal/modules/entity"
	"github.com/1234620/Travel-Based-Chatbot/internal/types"
)

const (
	dateLayout         = "2006-01-02"
	hotelSearchType    = "CITY"
	itineraryAdults    = 2
	itineraryLeadDays  = 30
	itineraryStayDays  = 7
	searchLeadDays     = 7
	hotelDefaultNights = 4
)

func (r *Router) handleFlight(ctx context.Context, ents entity.Set) string {
	if len(ents.Locations) < 2 {
		return replyNeedFlightEndpoints
	}
	origin, dest := ents.Locations[0], ents.Locations[1]

	date := r.now().AddDate(0, 0, searchLeadDays).Format(dateLayout)
	if len(ents.Dates) > 0 {
		date = ents.Dates[0].ISO()
	}

	res, err := r.searchFlights(ctx, origin, dest, date)
	if err != nil {
		r.logger.Error("flight search failed",
			zap.String("origin", origin), zap.String("destination", dest), zap.Error(err))
		return replyFlightError
	}
	if len(res.Data) == 0 {
		if res.Error != "" {
			r.logger.Warn("flight search returned an error", zap.String("error", res.Error))
		}
		return fmt.Sprintf(replyNoFlightsFmt, origin, dest, date)
	}
	return formatFlights(res.Data, origin, dest, date)
}

func (r *Router) handleHotel(ctx context.Context, ents entity.Set) string {
	if len(ents.Locations) == 0 {
		return replyNeedHotelDestination
	}
	dest := ents.Locations[0]

	var checkIn, checkOut string
	if len(ents.Dates) >= 2 {
		checkIn, checkOut = ents.Dates[0].ISO(), ents.Dates[1].ISO()
	} else {
		in := r.now().AddDate(0, 0, searchLeadDays)
		checkIn = in.Format(dateLayout)
		checkOut = in.AddDate(0, 0, hotelDefaultNights).Format(dateLayout)
	}

	adults := 1
	if len(ents.Numbers) > 0 {
		if n, err := strconv.Atoi(ents.Numbers[0]); err == nil && n > 0 {
			adults = n
		}
	}

	destID, ok := r.destinations.Resolve(dest)
	if !ok {
		return fmt.Sprintf(replyUnsupportedCityFmt, dest)
	}

	res, err := r.searchHotels(ctx, r.hotelQuery(destID, checkIn, checkOut, adults))
	if err != nil {
		r.logger.Error("hotel search failed", zap.String("destination", dest), zap.Error(err))
		return replyHotelError
	}
	if len(res.Data.Hotels) == 0 {
		if res.Error != "" {
			r.logger.Warn("hotel search returned an error", zap.String("error", res.Error))
		}
		return fmt.Sprintf(replyNoHotelsFmt, dest)
	}
	return formatHotels(res.Data.Hotels, dest, checkIn, checkOut)
}

func (r *Router) handleItinerary(ctx context.Context, text string) string {
	// Extracted again so generation does not depend on the routing decision.
	ents := entity.Extract(text)

	req := types.ItineraryRequest{Query: text}
	if len(ents.Locations) > 0 {
		req.Flights, req.Hotels = r.enrich(ctx, ents.Locations)
	}

	ctx, span := r.tracer.Start(ctx, "ItineraryGenerator.Generate")
	res, err := r.itinerary.Generate(ctx, req)
	endSpan(span, err)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("itinerary").Inc()
		r.logger.Error("itinerary generation failed", zap.Error(err))
		return replyItineraryError
	}
	if res.Error != "" {
		metrics.CollaboratorFailures.WithLabelValues("itinerary").Inc()
		return replyItineraryFailedPrefix + res.Error
	}
	return formatItinerary(res)
}

// enrich fetches flight and hotel context concurrently. Both lookups are best
// effort and the join is bounded by EnrichmentTimeout even when a
// collaborator ignores cancellation; a lookup that has not answered by then is
// left nil.
func (r *Router) enrich(ctx context.Context, locations []string) (*types.FlightSearchResult, *types.HotelSearchResult) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.EnrichmentTimeout)
	defer cancel()

	now := r.now()
	depart := now.AddDate(0, 0, itineraryLeadDays)
	origin := r.cfg.DefaultOrigin
	if len(locations) >= 2 {
		origin = locations[len(locations)-2]
	}
	dest := locations[len(locations)-1]

	flightCh := make(chan *types.FlightSearchResult, 1)
	hotelCh := make(chan *types.HotelSearchResult, 1)
	pending := 1

	go func() {
		defer r.recoverEnrichment("flight", func() { flightCh <- nil })
		res, err := r.searchFlights(ctx, origin, dest, depart.Format(dateLayout))
		if err != nil {
			r.logger.Warn("could not fetch flight data", zap.String("origin", origin), zap.String("destination", dest), zap.Error(err))
			flightCh <- nil
			return
		}
		flightCh <- &res
	}()

	if destID, ok := r.destinations.Resolve(dest); ok {
		pending++
		q := r.hotelQuery(destID,
			depart.Format(dateLayout),
			now.AddDate(0, 0, itineraryLeadDays+itineraryStayDays).Format(dateLayout),
			itineraryAdults)
		go func() {
			defer r.recoverEnrichment("hotel", func() { hotelCh <- nil })
			res, err := r.searchHotels(ctx, q)
			if err != nil {
				r.logger.Warn("could not fetch hotel data", zap.String("destination", dest), zap.Error(err))
				hotelCh <- nil
				return
			}
			hotelCh <- &res
		}()
	} else {
		r.logger.Debug("no destination id, skipping hotel enrichment", zap.String("destination", dest))
	}

	var flights *types.FlightSearchResult
	var hotels *types.HotelSearchResult
	for pending > 0 {
		select {
		case flights = <-flightCh:
			pending--
		case hotels = <-hotelCh:
			pending--
		case <-ctx.Done():
			r.logger.Warn("enrichment timed out", zap.Int("pending", pending), zap.Error(ctx.Err()))
			return flights, hotels
		}
	}
	return flights, hotels
}

// recoverEnrichment keeps a panicking lookup from taking the process down.
// signal must not block.
func (r *Router) recoverEnrichment(lookup string, signal func()) {
	if rec := recover(); rec != nil {
		metrics.CollaboratorFailures.WithLabelValues(lookup).Inc()
		r.logger.Error("enrichment lookup panicked", zap.String("lookup", lookup), zap.Any("panic", rec))
		signal()
	}
}

func (r *Router) hotelQuery(destID, checkIn, checkOut string, adults int) types.HotelQuery {
	return types.HotelQuery{
		DestID:        destID,
		SearchType:    hotelSearchType,
		ArrivalDate:   checkIn,
		DepartureDate: checkOut,
		Adults:        adults,
		RoomQty:       1,
		PriceMin:      r.cfg.PriceMin,
		PriceMax:      r.cfg.PriceMax,
		Currency:      r.cfg.Currency,
	}
}

func (r *Router) searchFlights(ctx context.Context, origin, dest, date string) (types.FlightSearchResult, error) {
	ctx, span := r.tracer.Start(ctx, "FlightSearcher.SearchFlights", trace.WithAttributes(
		attribute.String("flight.origin", origin),
		attribute.String("flight.destination", dest),
		attribute.String("flight.date", date),
	))
	res, err := r.flights.SearchFlights(ctx, origin, dest, date)
	endSpan(span, err)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("flight").Inc()
	}
	return res, err
}

func (r *Router) searchHotels(ctx context.Context, q types.HotelQuery) (types.HotelSearchResult, error) {
	ctx, span := r.tracer.Start(ctx, "HotelSearcher.SearchHotels", trace.WithAttributes(
		attribute.String("hotel.dest_id", q.DestID),
		attribute.String("hotel.arrival", q.ArrivalDate),
		attribute.Int("hotel.adults", q.Adults),
	))
	res, err := r.hotels.SearchHotels(ctx, q)
	endSpan(span, err)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("hotel").Inc()
	}
	return res, err
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
