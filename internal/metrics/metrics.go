// Package metrics provides Prometheus instrumentation for campus-hub.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by route pattern, method and status.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"route", "method", "status"})

	// RequestDuration records request latency in seconds.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campushub_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"route"})

	// RecommendationsServed counts recommended peers returned, by kind
	// ("scored" or "tiered").
	RecommendationsServed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_recommendations_served_total",
		Help: "Number of peer recommendations returned",
	}, []string{"kind"})

	// LookupFallbacks counts directory lookups served by direct table reads.
	LookupFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_lookup_fallbacks_total",
		Help: "Directory lookups answered by the table fallback",
	}, []string{"lookup"})

	// PrunedAccounts counts pre-student accounts removed after expiry.
	PrunedAccounts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campushub_pruned_pre_students_total",
		Help: "Expired pre-student accounts deleted",
	})

	// MessagesSent counts chat messages stored.
	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campushub_messages_sent_total",
		Help: "Chat messages sent",
	})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		RecommendationsServed,
		LookupFallbacks,
		PrunedAccounts,
		MessagesSent,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		RequestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}
