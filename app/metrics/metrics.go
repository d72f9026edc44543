package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blog", Name: "http_requests_total", Help: "Number of HTTP requests by route and status."},
		[]string{"route", "method", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "blog", Name: "http_request_duration_seconds", Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
	RendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blog", Name: "template_renders_total", Help: "Template renders by template and outcome."},
		[]string{"template", "outcome"},
	)
	CommentsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "blog", Name: "comments_received_total", Help: "Comments accepted by the comment handler."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RequestsTotal)
	reg.MustRegister(RequestDuration)
	reg.MustRegister(RendersTotal)
	reg.MustRegister(CommentsReceived)
}
