// README: Prometheus collectors for routing, collaborator calls and the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelbot_messages_routed_total",
			Help: "Messages handled by the router, by branch taken",
		},
		[]string{"branch"},
	)

	IntentsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelbot_intents_detected_total",
			Help: "Intent labels matched by the classifier",
		},
		[]string{"intent"},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelbot_collaborator_failures_total",
			Help: "Failed calls to flight, hotel and itinerary collaborators",
		},
		[]string{"collaborator"},
	)

	ProcessDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "travelbot_process_message_duration_seconds",
			Help:    "End-to-end message processing latency",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelbot_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)
)

// Branch labels for MessagesRouted.
const (
	BranchGeneral   = "general"
	BranchItinerary = "itinerary"
	BranchFlight    = "flight"
	BranchHotel     = "hotel"
	BranchFallback  = "fallback"
	BranchFailed    = "failed"
)
