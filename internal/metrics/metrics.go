package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
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
	SpinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsTotal,
			Help: HelpTextSpinsTotal,
		},
		[]string{LabelOutcome},
	)

	CouponsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCouponsIssued,
			Help: HelpTextCouponsIssued,
		},
	)

	CouponsRedeemed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCouponsRedeemed,
			Help: HelpTextCouponsRedeemed,
		},
	)

	RedemptionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRedemptionsRejected,
			Help: HelpTextRedemptionsRejected,
		},
		[]string{LabelReason},
	)

	PointsTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePointsTransactions,
			Help: HelpTextPointsTransactions,
		},
		[]string{LabelKind},
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRateLimitedRequests,
			Help: HelpTextRateLimitedRequests,
		},
	)
)
