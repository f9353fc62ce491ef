// README: Router: records turns, classifies intent and dispatches to the flight, hotel or itinerary branch.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/metrics"
	"github.com/1234620/Travel-Based-Chatbot/internal/modules/conversation"
	"github.com/1234620/Travel-Based-Chatbot/internal/modules/destination"
	"github.com/1234620/Travel-Based-Chatbot/internal/modules/intent"
	"github.com/1234620/Travel-Based-Chatbot/internal/types"
)

var (
	ErrMissingCollaborator = errors.New("router: missing collaborator")
	ErrPanic               = errors.New("router: panic while processing message")
)

// FlightSearcher looks up flight offers for one origin, destination and
// YYYY-MM-DD departure date.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, origin, destination, date string) (types.FlightSearchResult, error)
}

type HotelSearcher interface {
	SearchHotels(ctx context.Context, q types.HotelQuery) (types.HotelSearchResult, error)
}

type ItineraryGenerator interface {
	Generate(ctx context.Context, req types.ItineraryRequest) (types.ItineraryResult, error)
}

type RouterConfig struct {
	DefaultOrigin     string
	PriceMin          int
	PriceMax          int
	Currency          string
	EnrichmentTimeout time.Duration
}

func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		DefaultOrigin:     "NYC",
		PriceMin:          50,
		PriceMax:          500,
		Currency:          "USD",
		EnrichmentTimeout: 8 * time.Second,
	}
}

// RouterDeps are the Router's collaborators. Destinations may be nil, in
// which case the built-in table is used.
type RouterDeps struct {
	Store        conversation.Store
	Flights      FlightSearcher
	Hotels       HotelSearcher
	Itinerary    ItineraryGenerator
	Destinations *destination.Resolver
}

// Response is what ProcessMessage hands back to callers. IntentAnalysis is
// nil when processing failed before classification finished.
type Response struct {
	Response       string           `json:"response"`
	IntentAnalysis *intent.Analysis `json:"intent_analysis,omitempty"`
	ConversationID int              `json:"conversation_id"`
	Error          string           `json:"error,omitempty"`
}

type Router struct {
	conv         *conversation.Service
	flights      FlightSearcher
	hotels       HotelSearcher
	itinerary    ItineraryGenerator
	destinations *destination.Resolver
	cfg          RouterConfig
	now          func() time.Time
	logger       *zap.Logger
	tracer       trace.Tracer
}

func NewRouter(deps RouterDeps, cfg RouterConfig, logger *zap.Logger) (*Router, error) {
	switch {
	case deps.Store == nil:
		return nil, fmt.Errorf("%w: conversation store", ErrMissingCollaborator)
	case deps.Flights == nil:
		return nil, fmt.Errorf("%w: flight searcher", ErrMissingCollaborator)
	case deps.Hotels == nil:
		return nil, fmt.Errorf("%w: hotel searcher", ErrMissingCollaborator)
	case deps.Itinerary == nil:
		return nil, fmt.Errorf("%w: itinerary generator", ErrMissingCollaborator)
	}

	defaults := DefaultRouterConfig()
	if cfg.DefaultOrigin == "" {
		cfg.DefaultOrigin = defaults.DefaultOrigin
	}
	if cfg.Currency == "" {
		cfg.Currency = defaults.Currency
	}
	if cfg.PriceMin == 0 && cfg.PriceMax == 0 {
		cfg.PriceMin, cfg.PriceMax = defaults.PriceMin, defaults.PriceMax
	}
	if cfg.EnrichmentTimeout <= 0 {
		cfg.EnrichmentTimeout = defaults.EnrichmentTimeout
	}
	if deps.Destinations == nil {
		deps.Destinations = destination.NewResolver(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Router{
		conv:         conversation.NewService(deps.Store),
		flights:      deps.Flights,
		hotels:       deps.Hotels,
		itinerary:    deps.Itinerary,
		destinations: deps.Destinations,
		cfg:          cfg,
		now:          time.Now,
		logger:       logger,
		tracer:       otel.Tracer("travelbot/router"),
	}, nil
}

// WithClock replaces the time source for default dates and turn timestamps.
func (r *Router) WithClock(now func() time.Time) *Router {
	r.now = now
	r.conv.WithClock(now)
	return r
}

// ProcessMessage handles one user message end to end. It never returns an
// error: failures become an apology with Error set.
func (r *Router) ProcessMessage(ctx context.Context, text, userID string) (resp Response) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "Router.ProcessMessage",
		trace.WithAttributes(attribute.Bool("user.anonymous", userID == "")))
	defer func() {
		metrics.ProcessDuration.Observe(time.Since(start).Seconds())
		span.End()
	}()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic while processing message", zap.Any("panic", rec), zap.Stack("stack"))
			resp = r.fail(ctx, span, userID, fmt.Errorf("%w: %v", ErrPanic, rec))
		}
	}()

	if _, err := r.conv.Record(ctx, userID, conversation.RoleUser, text); err != nil {
		return r.fail(ctx, span, userID, err)
	}

	analysis := intent.Classify(text)
	for _, l := range analysis.Intents {
		metrics.IntentsDetected.WithLabelValues(string(l)).Inc()
	}
	r.logger.Info("intent analysis",
		zap.Any("intents", analysis.Intents),
		zap.Float64("confidence", analysis.Confidence),
		zap.Int("locations", len(analysis.Entities.Locations)),
	)

	reply, branch := r.route(ctx, text, analysis)
	metrics.MessagesRouted.WithLabelValues(branch).Inc()
	span.SetAttributes(attribute.String("router.branch", branch))

	id, err := r.conv.Record(ctx, userID, conversation.RoleAssistant, reply)
	if err != nil {
		return r.fail(ctx, span, userID, err)
	}
	return Response{Response: reply, IntentAnalysis: &analysis, ConversationID: id}
}

// fail records the apology as a best-effort assistant turn.
func (r *Router) fail(ctx context.Context, span trace.Span, userID string, err error) Response {
	r.logger.Error("error processing message", zap.Error(err))
	metrics.MessagesRouted.WithLabelValues(metrics.BranchFailed).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	id, recErr := r.conv.Record(ctx, userID, conversation.RoleAssistant, replyProcessingError)
	if recErr != nil {
		r.logger.Warn("could not record apology turn", zap.Error(recErr))
		id = 0
	}
	return Response{Response: replyProcessingError, ConversationID: id, Error: err.Error()}
}

// route applies the fixed branch priority and returns the reply together with
// the branch label used for metrics.
func (r *Router) route(ctx context.Context, text string, a intent.Analysis) (string, string) {
	switch {
	case a.Has(intent.General):
		return replyCapabilities, metrics.BranchGeneral
	case a.Has(intent.Itinerary):
		return r.handleItinerary(ctx, text), metrics.BranchItinerary
	case a.Has(intent.FlightSearch):
		return r.handleFlight(ctx, a.Entities), metrics.BranchFlight
	case a.Has(intent.HotelSearch):
		return r.handleHotel(ctx, a.Entities), metrics.BranchHotel
	case len(a.Intents) == 0:
		return r.handleItinerary(ctx, text), metrics.BranchItinerary
	default:
		return replyFallback, metrics.BranchFallback
	}
}

// History returns the recorded turns for userID, or all turns when userID is
// empty.
func (r *Router) History(ctx context.Context, userID string) ([]conversation.Turn, error) {
	return r.conv.History(ctx, userID)
}

func (r *Router) ClearHistory(ctx context.Context, userID string) error {
	return r.conv.Clear(ctx, userID)
}
