package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameSpinsTotal          = "spins_total"
	MetricNameCouponsIssued       = "coupons_issued_total"
	MetricNameCouponsRedeemed     = "coupons_redeemed_total"
	MetricNameRedemptionsRejected = "redemptions_rejected_total"
	MetricNamePointsTransactions  = "points_transactions_total"
	MetricNameRateLimitedRequests = "rate_limited_requests_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextSpinsTotal          = "Total number of wheel spins by outcome"
	HelpTextCouponsIssued       = "Total number of coupons issued"
	HelpTextCouponsRedeemed     = "Total number of coupons redeemed"
	HelpTextRedemptionsRejected = "Total number of rejected redemption attempts by reason"
	HelpTextPointsTransactions  = "Total number of loyalty points transactions by kind"
	HelpTextRateLimitedRequests = "Total number of requests rejected by the rate limiter"
)

// Metric label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
	LabelKind    = "kind"
)

// HTTPLatencyBuckets covers the expected handler latencies: everything here
// is a single draw plus a couple of keyed statements.
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5}
