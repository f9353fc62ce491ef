// README: API gateway; builds the gin engine, middleware chain and handlers.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/http/handlers"
	"github.com/1234620/Travel-Based-Chatbot/internal/http/middleware"
	"github.com/1234620/Travel-Based-Chatbot/internal/modules/destination"
	"github.com/1234620/Travel-Based-Chatbot/internal/service"
)

type ServerDeps struct {
	Chat         handlers.ChatService
	Flights      service.FlightSearcher
	Hotels       service.HotelSearcher
	Itinerary    service.ItineraryGenerator
	Destinations *destination.Resolver
	Logger       *zap.Logger

	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	RequestTimeout     time.Duration
}

type Server struct {
	deps   ServerDeps
	chat   *handlers.ChatHandler
	search *handlers.SearchHandler
}

func NewServer(deps ServerDeps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	chat, err := handlers.NewChatHandler(deps.Chat, deps.RequestTimeout, deps.Logger)
	if err != nil {
		return nil, err
	}
	return &Server{
		deps:   deps,
		chat:   chat,
		search: handlers.NewSearchHandler(deps.Flights, deps.Hotels, deps.Itinerary, deps.Destinations, deps.Logger),
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(s.deps.Logger),
		middleware.Logging(s.deps.Logger),
		cors.New(corsConfig(s.deps.AllowedOrigins)),
		middleware.RateLimit(s.deps.RateLimitPerSecond, s.deps.RateLimitBurst),
	)
	registerRoutes(r, s.chat, s.search)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
