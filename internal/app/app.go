// README: Dependency wiring shared by the API server and the chat demo.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/ai"
	"github.com/1234620/Travel-Based-Chatbot/internal/amadeus"
	"github.com/1234620/Travel-Based-Chatbot/internal/booking"
	"github.com/1234620/Travel-Based-Chatbot/internal/config"
	"github.com/1234620/Travel-Based-Chatbot/internal/infra"
	"github.com/1234620/Travel-Based-Chatbot/internal/maps"
	"github.com/1234620/Travel-Based-Chatbot/internal/modules/conversation"
	"github.com/1234620/Travel-Based-Chatbot/internal/modules/destination"
	"github.com/1234620/Travel-Based-Chatbot/internal/service"
)

// App holds the wired collaborators. Close releases every connection opened
// by Build.
type App struct {
	Router       *service.Router
	Flights      *amadeus.Client
	Hotels       *booking.Client
	Itinerary    *ai.ItineraryPlanner
	Destinations *destination.Resolver

	closers []func()
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{}

	store, err := a.openStore(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	var overrides map[string]string
	if cfg.Destinations.File != "" {
		overrides, err = destination.LoadFile(cfg.Destinations.File)
		if err != nil {
			a.Close()
			return nil, err
		}
	}
	a.Destinations = destination.NewResolver(overrides)

	a.Flights = amadeus.NewClient(amadeus.Config{
		BaseURL:   cfg.Amadeus.BaseURL,
		APIKey:    cfg.Amadeus.APIKey,
		APISecret: cfg.Amadeus.APISecret,
		Timeout:   cfg.Amadeus.Timeout,
	}, logger.Named("amadeus"))
	a.Hotels = booking.NewClient(booking.Config{
		BaseURL: cfg.Booking.BaseURL,
		Host:    cfg.Booking.Host,
		APIKey:  cfg.Booking.APIKey,
		Timeout: cfg.Booking.Timeout,
	}, logger.Named("booking"))

	// Interfaces stay nil unless configured so the planner can tell.
	var llm ai.LLMProvider
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model, cfg.AI.Temperature)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init gemini: %w", err)
		}
		a.closers = append(a.closers, gemini.Close)
		llm = gemini
	} else {
		logger.Warn("ai.gemini_key not set, itineraries use the built-in template")
	}

	var attractions ai.AttractionFinder
	if cfg.Maps.APIKey != "" {
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init places: %w", err)
		}
		attractions = places
	}
	a.Itinerary = ai.NewItineraryPlanner(llm, attractions, logger.Named("itinerary"))

	a.Router, err = service.NewRouter(service.RouterDeps{
		Store:        store,
		Flights:      a.Flights,
		Hotels:       a.Hotels,
		Itinerary:    a.Itinerary,
		Destinations: a.Destinations,
	}, service.RouterConfig{
		DefaultOrigin:     cfg.Router.DefaultOrigin,
		PriceMin:          cfg.Router.PriceMin,
		PriceMax:          cfg.Router.PriceMax,
		Currency:          cfg.Router.Currency,
		EnrichmentTimeout: cfg.Router.EnrichmentTimeout,
	}, logger.Named("router"))
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (conversation.Store, error) {
	switch cfg.Conversation.Backend {
	case config.BackendRedis:
		client, err := infra.NewRedis(ctx, infra.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		logger.Info("conversation store: redis", zap.String("addr", cfg.Redis.Addr))
		return conversation.NewRedisStore(client, cfg.Conversation.RedisKey), nil
	case config.BackendPostgres:
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		logger.Info("conversation store: postgres")
		return conversation.NewPostgresStore(pool), nil
	default:
		logger.Info("conversation store: memory")
		return conversation.NewMemoryStore(), nil
	}
}
