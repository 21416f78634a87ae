package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grubdash-service/internal/apperr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests   *prometheus.CounterVec
	LatencyMS  *prometheus.HistogramVec
	Rejections *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. The registry is also what Handler
// serves.
func New(reg *prometheus.Registry) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grubdash",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "grubdash",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"handler"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grubdash",
		Name:      "chain_rejections_total",
		Help:      "Requests rejected by a validation chain.",
	}, []string{"chain", "status"})

	reg.MustRegister(requests, latency, rejections)
	return &ServerMetrics{
		Requests:   requests,
		LatencyMS:  latency,
		Rejections: rejections,
		gatherer:   reg,
	}
}

// Middleware records every request under its route pattern, so that
// /orders/1 and /orders/2 share a series. Unmatched paths are grouped.
func (m *ServerMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
}

// ObserveRejection matches pipeline.Observer.
func (m *ServerMetrics) ObserveRejection(chain string, err error) {
	status := http.StatusInternalServerError
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status = appErr.Status()
	}
	m.Rejections.WithLabelValues(chain, strconv.Itoa(status)).Inc()
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
