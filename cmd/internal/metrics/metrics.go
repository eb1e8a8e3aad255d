// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the slice of the collector the service layer uses.
type Recorder interface {
	RecordSignup()
	RecordLogin(success bool)
	RecordBooking()
}

type Collector struct {
	signups     prometheus.Counter
	logins      *prometheus.CounterVec
	bookings    prometheus.Counter
	httpStatus  *prometheus.CounterVec
	httpLatency prometheus.Histogram
	registry    *prometheus.Registry
}

func NewCollector() *Collector {
	c := &Collector{
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clientflow_signups_total",
			Help: "Total number of completed signups.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clientflow_logins_total",
			Help: "Total number of login attempts by outcome.",
		}, []string{"outcome"}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clientflow_bookings_total",
			Help: "Total number of advisory sessions booked.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clientflow_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clientflow_http_latency_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		registry: prometheus.NewRegistry(),
	}

	c.registry.MustRegister(c.signups, c.logins, c.bookings, c.httpStatus, c.httpLatency)
	return c
}

func (c *Collector) RecordSignup() {
	c.signups.Inc()
}

func (c *Collector) RecordLogin(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordBooking() {
	c.bookings.Inc()
}

// Handler serves the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records status code and latency for every request.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			start := time.Now()
			err := next(ec)

			status := ec.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}
			c.httpStatus.WithLabelValues(strconv.Itoa(status)).Inc()
			c.httpLatency.Observe(time.Since(start).Seconds())
			return err
		}
	}
}
