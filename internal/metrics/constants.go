package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "recipebox_http_requests_total"
	MetricNameHTTPRequestDuration  = "recipebox_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "recipebox_http_requests_in_flight"
)

// Business metric names
const (
	MetricNameRecipesCreated     = "recipebox_recipes_created_total"
	MetricNameRecipesImported    = "recipebox_recipes_imported_total"
	MetricNameReviewsSubmitted   = "recipebox_reviews_submitted_total"
	MetricNameShoppingListsBuilt = "recipebox_shopping_lists_generated_total"
	MetricNameConsolidatedItems  = "recipebox_consolidated_items"
	MetricNameOrdersPlaced       = "recipebox_orders_placed_total"
	MetricNameOrderStatusChanges = "recipebox_order_status_changes_total"
	MetricNameSSEClients         = "recipebox_sse_clients"
	MetricNameSSEEventsDropped   = "recipebox_sse_events_dropped_total"
	MetricNameLLMTokens          = "recipebox_llm_tokens_total"
	MetricNameLLMRequests        = "recipebox_llm_requests_total"
	MetricNameRecipeCacheLookups = "recipebox_recipe_cache_lookups_total"
)

// Help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextRecipesCreated     = "Total number of recipes created through the API"
	HelpTextRecipesImported    = "Total number of recipes imported from external sources"
	HelpTextReviewsSubmitted   = "Total number of recipe reviews submitted"
	HelpTextShoppingListsBuilt = "Total number of shopping lists generated or regenerated"
	HelpTextConsolidatedItems  = "Number of consolidated items per generated shopping list"
	HelpTextOrdersPlaced       = "Total number of shop orders placed"
	HelpTextOrderStatusChanges = "Total number of order status transitions"
	HelpTextSSEClients         = "Current number of connected event stream clients"
	HelpTextSSEEventsDropped   = "Total number of events dropped for slow stream clients"
	HelpTextLLMTokens          = "Total number of LLM tokens consumed"
	HelpTextLLMRequests        = "Total number of LLM-backed operations"
	HelpTextRecipeCacheLookups = "Recipe cache lookups by result"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelSource = "source"
	LabelAgent  = "agent"
	LabelKind   = "kind"
	LabelResult = "result"
)

// HTTPLatencyBuckets are histogram buckets for request latency, in seconds.
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ItemCountBuckets are histogram buckets for per-list item counts.
var ItemCountBuckets = []float64{1, 5, 10, 20, 50, 100, 250}
