package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/pkg/metrics"
)

type MetricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		logger: logger,
	}
}

// Handler records request totals and latency per endpoint and tags each
// request with an ID for log correlation.
func (m *MetricsMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set(RequestIDContextKey, requestID)

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		duration := float64(time.Since(start).Milliseconds())
		metrics.RequestLatency.WithLabelValues(endpoint).Observe(duration)
		metrics.RequestTotal.WithLabelValues(
			endpoint,
			c.Request.Method,
			metrics.GetStatusClass(c.Writer.Status()),
		).Inc()

		if c.Writer.Status() >= 500 {
			m.logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"endpoint":   endpoint,
				"status":     c.Writer.Status(),
			}).Error("Request failed")
		}
	}
}
