package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics holds the Prometheus metrics for the HTTP surface.
type HTTPMetrics struct {
	RequestsTotal *prometheus.CounterVec
	PaymentsTotal *prometheus.CounterVec
}

// NewHTTPMetrics initializes and registers the Prometheus metrics.
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connect_demo",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status.",
		}, []string{"method", "path", "status"}),
		PaymentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connect_demo",
			Subsystem: "payments",
			Name:      "payments_total",
			Help:      "Total number of payment attempts by outcome.",
		}, []string{"outcome"}), // outcome: succeeded, declined, failed
	}
}

// Middleware counts every request against its registered route.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
			m.RequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				strconv.Itoa(status),
			).Inc()
			return err
		}
	}
}
