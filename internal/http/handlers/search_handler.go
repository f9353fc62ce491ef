// README: Direct provider endpoints: flight search, hotel search and itinerary generation.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/modules/destination"
	"github.com/1234620/Travel-Based-Chatbot/internal/service"
	"github.com/1234620/Travel-Based-Chatbot/internal/types"
)

const dateLayout = "2006-01-02"

type SearchHandler struct {
	flights      service.FlightSearcher
	hotels       service.HotelSearcher
	itinerary    service.ItineraryGenerator
	destinations *destination.Resolver
	now          func() time.Time
	logger       *zap.Logger
}

func NewSearchHandler(
	flights service.FlightSearcher,
	hotels service.HotelSearcher,
	itinerary service.ItineraryGenerator,
	destinations *destination.Resolver,
	logger *zap.Logger,
) *SearchHandler {
	if destinations == nil {
		destinations = destination.NewResolver(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{
		flights:      flights,
		hotels:       hotels,
		itinerary:    itinerary,
		destinations: destinations,
		now:          time.Now,
		logger:       logger,
	}
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Flight handles GET /flight?origin&destination&departure_date.
func (h *SearchHandler) Flight(c *gin.Context) {
	origin := c.Query("origin")
	dest := c.Query("destination")
	date := c.Query("departure_date")
	if origin == "" || dest == "" || date == "" {
		writeError(c, http.StatusBadRequest, "origin, destination and departure_date are required")
		return
	}
	if !validDate(date) {
		writeError(c, http.StatusBadRequest, "departure_date must be YYYY-MM-DD")
		return
	}

	res, err := h.flights.SearchFlights(c.Request.Context(), origin, dest, date)
	if err != nil {
		h.logger.Error("flight search", zap.Error(err))
		writeUpstreamError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Hotel handles GET /hotel.
func (h *SearchHandler) Hotel(c *gin.Context) {
	q := types.HotelQuery{
		DestID:        c.Query("dest_id"),
		SearchType:    c.DefaultQuery("search_type", "CITY"),
		ArrivalDate:   c.Query("arrival_date"),
		DepartureDate: c.Query("departure_date"),
		Currency:      c.DefaultQuery("currency_code", "USD"),
	}
	if q.DestID == "" || q.ArrivalDate == "" || q.DepartureDate == "" {
		writeError(c, http.StatusBadRequest, "dest_id, arrival_date and departure_date are required")
		return
	}
	if !validDate(q.ArrivalDate) || !validDate(q.DepartureDate) {
		writeError(c, http.StatusBadRequest, "dates must be YYYY-MM-DD")
		return
	}

	ints := []struct {
		name string
		def  int
		dst  *int
	}{
		{"adults", 1, &q.Adults},
		{"room_qty", 1, &q.RoomQty},
		{"price_min", 0, &q.PriceMin},
		{"price_max", 0, &q.PriceMax},
	}
	for _, p := range ints {
		n, err := strconv.Atoi(c.DefaultQuery(p.name, strconv.Itoa(p.def)))
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, p.name+" must be a non-negative integer")
			return
		}
		*p.dst = n
	}

	res, err := h.hotels.SearchHotels(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("hotel search", zap.Error(err))
		writeUpstreamError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Itinerary handles GET /rag?query.
func (h *SearchHandler) Itinerary(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		writeError(c, http.StatusBadRequest, "query is required")
		return
	}
	res, err := h.itinerary.Generate(c.Request.Context(), types.ItineraryRequest{Query: query})
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// IntegratedItinerary handles GET /rag/integrated. Flights and hotels are
// fetched only when a destination is given, and their failures are logged
// rather than returned.
func (h *SearchHandler) IntegratedItinerary(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		writeError(c, http.StatusBadRequest, "query is required")
		return
	}
	origin := c.DefaultQuery("origin", "NYC")
	dest := c.Query("destination")

	now := h.now()
	departure := c.DefaultQuery("departure_date", now.AddDate(0, 0, 30).Format(dateLayout))
	arrival := c.DefaultQuery("arrival_date", now.AddDate(0, 0, 37).Format(dateLayout))
	hotelCheckout := c.DefaultQuery("departure_date_hotel", arrival)
	for _, d := range []string{departure, arrival, hotelCheckout} {
		if !validDate(d) {
			writeError(c, http.StatusBadRequest, "dates must be YYYY-MM-DD")
			return
		}
	}

	ctx := c.Request.Context()
	req := types.ItineraryRequest{Query: query}
	if dest != "" {
		if res, err := h.flights.SearchFlights(ctx, origin, dest, departure); err != nil {
			h.logger.Warn("could not fetch flight data", zap.Error(err))
		} else {
			req.Flights = &res
		}

		if destID, ok := h.destinations.Resolve(dest); ok {
			res, err := h.hotels.SearchHotels(ctx, types.HotelQuery{
				DestID:        destID,
				SearchType:    "CITY",
				ArrivalDate:   departure,
				DepartureDate: hotelCheckout,
				Adults:        2,
				RoomQty:       1,
			})
			if err != nil {
				h.logger.Warn("could not fetch hotel data", zap.Error(err))
			} else {
				req.Hotels = &res
			}
		}
	}

	res, err := h.itinerary.Generate(ctx, req)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}
