// README: Collaborator payloads shared by the router, the provider clients and the itinerary planner.
package types

// FlightSearchResult mirrors the flight-offers response; Error carries an
// upstream failure that still produced a body.
type FlightSearchResult struct {
	Data  []FlightOffer `json:"data"`
	Error string        `json:"error,omitempty"`
}

type FlightOffer struct {
	ID          string            `json:"id,omitempty"`
	Itineraries []FlightItinerary `json:"itineraries"`
	Price       FlightPrice       `json:"price"`
}

type FlightItinerary struct {
	Duration string          `json:"duration,omitempty"`
	Segments []FlightSegment `json:"segments"`
}

type FlightSegment struct {
	Departure   FlightEndpoint `json:"departure"`
	Arrival     FlightEndpoint `json:"arrival"`
	CarrierCode string         `json:"carrierCode"`
	Number      string         `json:"number"`
	Aircraft    struct {
		Code string `json:"code,omitempty"`
	} `json:"aircraft"`
}

type FlightEndpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

type FlightPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// FirstSegment returns the first segment of the first itinerary, if any.
func (o FlightOffer) FirstSegment() (FlightSegment, bool) {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return FlightSegment{}, false
	}
	return o.Itineraries[0].Segments[0], true
}

// HotelQuery is the hotel search request.
type HotelQuery struct {
	DestID        string
	SearchType    string
	ArrivalDate   string
	DepartureDate string
	Adults        int
	RoomQty       int
	PriceMin      int
	PriceMax      int
	Currency      string
}

type HotelSearchResult struct {
	Data  HotelData `json:"data"`
	Error string    `json:"error,omitempty"`
}

type HotelData struct {
	Hotels []HotelOffer `json:"hotels"`
}

type HotelOffer struct {
	HotelID  int           `json:"hotel_id,omitempty"`
	Property HotelProperty `json:"property"`
}

type HotelProperty struct {
	Name           string         `json:"name"`
	ReviewScore    *float64       `json:"reviewScore,omitempty"`
	ReviewCount    int            `json:"reviewCount,omitempty"`
	QualityClass   int            `json:"qualityClass,omitempty"`
	PriceBreakdown PriceBreakdown `json:"priceBreakdown"`
}

type PriceBreakdown struct {
	GrossPrice GrossPrice `json:"grossPrice"`
}

type GrossPrice struct {
	Value    *float64 `json:"value,omitempty"`
	Currency string   `json:"currency"`
}

// ItineraryRequest carries the user's text plus whatever enrichment could be
// fetched. Nil enrichment means the lookup was skipped or failed.
type ItineraryRequest struct {
	Query   string
	Flights *FlightSearchResult
	Hotels  *HotelSearchResult
}

type ItineraryResult struct {
	Itinerary   string   `json:"itinerary"`
	Location    string   `json:"location"`
	Preferences []string `json:"preferences"`
	Sources     []string `json:"sources"`
	Error       string   `json:"error,omitempty"`
}
