package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/1234620/Travel-Based-Chatbot/internal/amadeus"
	"github.com/1234620/Travel-Based-Chatbot/internal/booking"
	"github.com/1234620/Travel-Based-Chatbot/internal/http/handlers"
	"github.com/1234620/Travel-Based-Chatbot/internal/modules/conversation"
	"github.com/1234620/Travel-Based-Chatbot/internal/service"
	"github.com/1234620/Travel-Based-Chatbot/internal/types"
)

type stubChat struct {
	gotText, gotUser string
	resp             service.Response
	turns            []conversation.Turn
	err              error
	cleared          []string
}

func (s *stubChat) ProcessMessage(_ context.Context, text, userID string) service.Response {
	s.gotText, s.gotUser = text, userID
	return s.resp
}

func (s *stubChat) History(_ context.Context, userID string) ([]conversation.Turn, error) {
	return s.turns, s.err
}

func (s *stubChat) ClearHistory(_ context.Context, userID string) error {
	s.cleared = append(s.cleared, userID)
	return s.err
}

type stubFlights struct {
	res  types.FlightSearchResult
	err  error
	args []string
}

func (s *stubFlights) SearchFlights(_ context.Context, origin, dest, date string) (types.FlightSearchResult, error) {
	s.args = []string{origin, dest, date}
	return s.res, s.err
}

type stubHotels struct {
	res types.HotelSearchResult
	err error
	q   *types.HotelQuery
}

func (s *stubHotels) SearchHotels(_ context.Context, q types.HotelQuery) (types.HotelSearchResult, error) {
	s.q = &q
	return s.res, s.err
}

type stubItinerary struct {
	req *types.ItineraryRequest
}

func (s *stubItinerary) Generate(_ context.Context, req types.ItineraryRequest) (types.ItineraryResult, error) {
	s.req = &req
	return types.ItineraryResult{Itinerary: "plan", Location: "Paris, France", Preferences: []string{}, Sources: []string{}}, nil
}

func buildChatRouter(t *testing.T, chat handlers.ChatService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h, err := handlers.NewChatHandler(chat, time.Second, zaptest.NewLogger(t))
	require.NoError(t, err)
	r := gin.New()
	r.POST("/chat", h.Chat)
	r.GET("/conversation/:user_id", h.History)
	r.DELETE("/conversation/:user_id", h.Clear)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatValidBody(t *testing.T) {
	chat := &stubChat{resp: service.Response{Response: "hi there", ConversationID: 2}}
	r := buildChatRouter(t, chat)

	w := doRequest(r, http.MethodPost, "/chat", `{"message":"hello","user_id":" u-1 "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", chat.gotText)
	assert.Equal(t, "u-1", chat.gotUser)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "hi there", got["response"])
	assert.EqualValues(t, 2, got["conversation_id"])
	assert.NotContains(t, got, "error")
}

func TestChatNullUserIsAnonymous(t *testing.T) {
	chat := &stubChat{}
	r := buildChatRouter(t, chat)

	w := doRequest(r, http.MethodPost, "/chat", `{"message":"hello","user_id":null}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", chat.gotUser)
}

func TestChatRejectsInvalidBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"message":`},
		{"missing message", `{"user_id":"u1"}`},
		{"empty message", `{"message":""}`},
		{"wrong type", `{"message":42}`},
		{"user id too long", `{"message":"hi","user_id":"` + strings.Repeat("x", 65) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &stubChat{}
			w := doRequest(buildChatRouter(t, chat), http.MethodPost, "/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, chat.gotText)
		})
	}
}

func TestChatFailureStillAnswers200(t *testing.T) {
	chat := &stubChat{resp: service.Response{Response: "I apologize", Error: "boom"}}
	w := doRequest(buildChatRouter(t, chat), http.MethodPost, "/chat", `{"message":"hello"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"boom"`)
}

func TestConversationHistoryAndClear(t *testing.T) {
	chat := &stubChat{turns: []conversation.Turn{{UserID: "u1", Message: "hello", Role: conversation.RoleUser}}}
	r := buildChatRouter(t, chat)

	w := doRequest(r, http.MethodGet, "/conversation/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"conversation_history":[`)
	assert.Contains(t, w.Body.String(), `"message":"hello"`)

	w = doRequest(r, http.MethodDelete, "/conversation/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Conversation history cleared"}`, w.Body.String())
	assert.Equal(t, []string{"u1"}, chat.cleared)

	w = doRequest(r, http.MethodGet, "/conversation/"+strings.Repeat("é", 65), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(r, http.MethodGet, "/conversation/%20%20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatIgnoresUnknownFields(t *testing.T) {
	chat := &stubChat{}
	w := doRequest(buildChatRouter(t, chat), http.MethodPost, "/chat", `{"message":"hi","extra":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", chat.gotText)
}

// memChat keeps turns per user so a round trip through the handlers can be
// observed.
type memChat struct {
	turns map[string][]conversation.Turn
}

func (m *memChat) ProcessMessage(_ context.Context, text, userID string) service.Response {
	m.turns[userID] = append(m.turns[userID], conversation.Turn{UserID: userID, Message: text, Role: conversation.RoleUser})
	return service.Response{Response: "ok", ConversationID: len(m.turns[userID])}
}

func (m *memChat) History(_ context.Context, userID string) ([]conversation.Turn, error) {
	return m.turns[userID], nil
}

func (m *memChat) ClearHistory(_ context.Context, userID string) error {
	delete(m.turns, userID)
	return nil
}

func TestConversationRoundTripForAnyChatUserID(t *testing.T) {
	ids := []string{"john doe", "josé", "user#1", "ünïcödé-" + strings.Repeat("x", 55)}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			chat := &memChat{turns: map[string][]conversation.Turn{}}
			r := buildChatRouter(t, chat)

			body, err := json.Marshal(map[string]string{"message": "hello", "user_id": id})
			require.NoError(t, err)
			w := doRequest(r, http.MethodPost, "/chat", string(body))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			path := "/conversation/" + url.PathEscape(id)
			w = doRequest(r, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var got struct {
				History []conversation.Turn `json:"conversation_history"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.Len(t, got.History, 1)
			assert.Equal(t, "hello", got.History[0].Message)

			w = doRequest(r, http.MethodDelete, path, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Empty(t, chat.turns[id])
		})
	}
}

func TestConversationStoreUnavailable(t *testing.T) {
	chat := &stubChat{err: conversation.ErrUnavailable}
	r := buildChatRouter(t, chat)
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(r, http.MethodGet, "/conversation/u1", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(r, http.MethodDelete, "/conversation/u1", "").Code)
}

func buildSearchRouter(flights *stubFlights, hotels *stubHotels, itin *stubItinerary) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewSearchHandler(flights, hotels, itin, nil, nil)
	r := gin.New()
	r.GET("/flight", h.Flight)
	r.GET("/hotel", h.Hotel)
	r.GET("/rag", h.Itinerary)
	r.GET("/rag/integrated", h.IntegratedItinerary)
	return r
}

func TestFlightEndpoint(t *testing.T) {
	flights := &stubFlights{res: types.FlightSearchResult{Data: []types.FlightOffer{{ID: "1"}}}}
	r := buildSearchRouter(flights, &stubHotels{}, &stubItinerary{})

	w := doRequest(r, http.MethodGet, "/flight?origin=JFK&destination=LAX&departure_date=2024-01-15", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"JFK", "LAX", "2024-01-15"}, flights.args)
	assert.Contains(t, w.Body.String(), `"id":"1"`)

	w = doRequest(r, http.MethodGet, "/flight?origin=JFK&destination=LAX&departure_date=01/15/2024", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/flight?origin=JFK", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlightEndpointUpstreamErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{amadeus.ErrMissingCredentials, http.StatusServiceUnavailable},
		{&amadeus.APIError{Op: "search", Status: 400, Body: "bad"}, http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := buildSearchRouter(&stubFlights{err: tt.err}, &stubHotels{}, &stubItinerary{})
		w := doRequest(r, http.MethodGet, "/flight?origin=JFK&destination=LAX&departure_date=2024-01-15", "")
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}

func TestHotelEndpoint(t *testing.T) {
	hotels := &stubHotels{}
	r := buildSearchRouter(&stubFlights{}, hotels, &stubItinerary{})

	w := doRequest(r, http.MethodGet, "/hotel?dest_id=-1456928&arrival_date=2024-02-01&departure_date=2024-02-05&adults=2&price_max=300", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, hotels.q)
	assert.Equal(t, types.HotelQuery{
		DestID: "-1456928", SearchType: "CITY", ArrivalDate: "2024-02-01", DepartureDate: "2024-02-05",
		Adults: 2, RoomQty: 1, PriceMax: 300, Currency: "USD",
	}, *hotels.q)

	w = doRequest(r, http.MethodGet, "/hotel?dest_id=1&arrival_date=2024-02-01&departure_date=2024-02-05&adults=two", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = buildSearchRouter(&stubFlights{}, &stubHotels{err: booking.ErrMissingAPIKey}, &stubItinerary{})
	w = doRequest(r, http.MethodGet, "/hotel?dest_id=1&arrival_date=2024-02-01&departure_date=2024-02-05", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestItineraryEndpoints(t *testing.T) {
	flights, hotels, itin := &stubFlights{}, &stubHotels{}, &stubItinerary{}
	r := buildSearchRouter(flights, hotels, itin)

	w := doRequest(r, http.MethodGet, "/rag?query=trip+to+paris", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trip to paris", itin.req.Query)
	assert.Nil(t, itin.req.Flights)

	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/rag", "").Code)

	w = doRequest(r, http.MethodGet, "/rag/integrated?query=trip&destination=Paris&departure_date=2024-03-01&arrival_date=2024-03-08", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"NYC", "Paris", "2024-03-01"}, flights.args)
	require.NotNil(t, hotels.q)
	assert.Equal(t, "-1456928", hotels.q.DestID)
	assert.Equal(t, "2024-03-01", hotels.q.ArrivalDate)
	assert.Equal(t, "2024-03-08", hotels.q.DepartureDate)
	assert.Equal(t, 2, hotels.q.Adults)
	assert.NotNil(t, itin.req.Flights)
	assert.NotNil(t, itin.req.Hotels)
}

func TestIntegratedItineraryWithoutDestinationSkipsLookups(t *testing.T) {
	flights, hotels, itin := &stubFlights{}, &stubHotels{}, &stubItinerary{}
	r := buildSearchRouter(flights, hotels, itin)

	w := doRequest(r, http.MethodGet, "/rag/integrated?query=somewhere", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, flights.args)
	assert.Nil(t, hotels.q)
	assert.Nil(t, itin.req.Hotels)
}
