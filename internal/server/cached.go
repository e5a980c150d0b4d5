package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/cache"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/pkg/metrics"
)

const jsonContentType = "application/json; charset=utf-8"

// cachedJSON is the cache-aside read path. On a hit the stored envelope is
// returned verbatim; on a miss the compute pipeline runs and its serialized
// result is stored under the key with the endpoint's TTL. A failing cache
// store never fails the request: errors are logged and the query runs
// directly.
func (s *Server) cachedJSON(c *gin.Context, endpoint, key string, ttl time.Duration, compute func() (interface{}, error)) {
	ctx := c.Request.Context()

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		metrics.CacheHits.WithLabelValues(endpoint).Inc()
		c.Data(http.StatusOK, jsonContentType, []byte(cached))
		return
	case errors.Is(err, cache.ErrMiss):
		metrics.CacheMisses.WithLabelValues(endpoint).Inc()
	default:
		s.logger.WithError(err).WithField("key", key).Warn("Cache read failed, querying store directly")
	}

	result, err := compute()
	if err != nil {
		s.respondError(c, err)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.cache.Set(ctx, key, string(body), ttl); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}

	c.Data(http.StatusOK, jsonContentType, body)
}
