package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	EventSignup  = "signup"
	EventLogin   = "login"
	EventLogout  = "logout"
	EventRefresh = "refresh"
)

type Metrics interface {
	Middleware() fiber.Handler
	Handler() fiber.Handler
	IncAuthEvent(event, outcome string)
}

type metrics struct {
	gatherer            prometheus.Gatherer
	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	authEventsTotal     *prometheus.CounterVec
}

// NewMetrics registers every collector on registry. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func NewMetrics(registry *prometheus.Registry) Metrics {
	m := &metrics{
		gatherer: registry,
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		authEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Authentication events by outcome.",
			},
			[]string{"event", "outcome"},
		),
	}

	registry.MustRegister(
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.authEventsTotal,
	)

	return m
}

func (m *metrics) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		start := time.Now()
		err := ctx.Next()
		if err != nil {
			// render now so the recorded status is the one the client sees
			if handlerErr := ctx.App().Config().ErrorHandler(ctx, err); handlerErr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := ctx.Response().StatusCode()

		// route path keeps label cardinality bounded
		path := ctx.Route().Path
		labels := []string{ctx.Method(), path, strconv.Itoa(status)}
		m.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(labels...).Inc()

		return nil
	}
}

func (m *metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}

func (m *metrics) IncAuthEvent(event, outcome string) {
	m.authEventsTotal.WithLabelValues(event, outcome).Inc()
}
