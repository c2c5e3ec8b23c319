package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"recipebox/internal/shared"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	RecipesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecipesCreated,
			Help: HelpTextRecipesCreated,
		},
	)

	RecipesImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipesImported,
			Help: HelpTextRecipesImported,
		},
		[]string{LabelSource},
	)

	ReviewsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReviewsSubmitted,
			Help: HelpTextReviewsSubmitted,
		},
	)

	ShoppingListsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameShoppingListsBuilt,
			Help: HelpTextShoppingListsBuilt,
		},
	)

	ConsolidatedItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameConsolidatedItems,
			Help:    HelpTextConsolidatedItems,
			Buckets: ItemCountBuckets,
		},
	)

	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOrdersPlaced,
			Help: HelpTextOrdersPlaced,
		},
	)

	OrderStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrderStatusChanges,
			Help: HelpTextOrderStatusChanges,
		},
		[]string{LabelStatus},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)

	SSEEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSSEEventsDropped,
			Help: HelpTextSSEEventsDropped,
		},
	)

	RecipeCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipeCacheLookups,
			Help: HelpTextRecipeCacheLookups,
		},
		[]string{LabelResult},
	)
)

// LLM Metrics
var (
	LLMTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLLMTokens,
			Help: HelpTextLLMTokens,
		},
		[]string{LabelAgent, LabelKind},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLLMRequests,
			Help: HelpTextLLMRequests,
		},
		[]string{LabelAgent},
	)
)

// ObserveAgent updates the LLM counters from one agent execution.
func ObserveAgent(meta shared.AgentMeta) {
	LLMRequests.WithLabelValues(meta.AgentName).Inc()
	LLMTokens.WithLabelValues(meta.AgentName, "prompt").Add(float64(meta.Usage.PromptTokens))
	LLMTokens.WithLabelValues(meta.AgentName, "completion").Add(float64(meta.Usage.CompletionTokens))
}
