package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetricsMiddleware records request counts and durations labelled with
// method, route pattern and status code. Unmatched routes are labelled
// "unknown" to keep cardinality bounded.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	meter := meterProvider.Meter(namespace)

	requestCounter, counterErr := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	durationHisto, histoErr := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if counterErr != nil || histoErr != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		opt := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)

		ctx := c.Request.Context()
		requestCounter.Add(ctx, 1, opt)
		durationHisto.Record(ctx, time.Since(start).Seconds(), opt)
	}
}
