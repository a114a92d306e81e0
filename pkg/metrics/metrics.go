package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Login outcomes.
const (
	LoginSuccess = "success"
	LoginInvalid = "invalid_credentials"
	LoginError   = "error"
)

// Collectors groups the service's Prometheus instruments.
type Collectors struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	loginResults    *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
	gatherer        prometheus.Gatherer
}

// New registers the collectors on reg. Already registered collectors are reused.
func New(reg *prometheus.Registry) *Collectors {
	c := &Collectors{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "users_api",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "users_api",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		loginResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "users_api",
			Subsystem: "auth",
			Name:      "login_results_total",
			Help:      "Administrator login outcomes",
		}, []string{"outcome"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "users_api",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}, []string{"route"}),
		gatherer: reg,
	}
	c.requestTotal = register(reg, c.requestTotal)
	c.requestDuration = register(reg, c.requestDuration)
	c.loginResults = register(reg, c.loginResults)
	c.rateLimited = register(reg, c.rateLimited)
	return c
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) T {
	if err := reg.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return collector
}

// Middleware records request count and latency labelled by the matched route pattern.
func (c *Collectors) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		labels := prometheus.Labels{
			"method": ctx.Method(),
			"route":  ctx.Route().Path,
			"status": strconv.Itoa(status),
		}
		c.requestTotal.With(labels).Inc()
		c.requestDuration.With(labels).Observe(time.Since(start).Seconds())
		return err
	}
}

func (c *Collectors) RecordLogin(outcome string) {
	c.loginResults.With(prometheus.Labels{"outcome": outcome}).Inc()
}

func (c *Collectors) RecordRateLimited(route string) {
	c.rateLimited.With(prometheus.Labels{"route": route}).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collectors) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{}))
}
