package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/cache"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/database"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/devices"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/middleware"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/pagination"
)

// getDeviceEvents returns normalized, paginated telemetry for one device.
// The membership check runs before the cache is consulted.
func (s *Server) getDeviceEvents(c *gin.Context) {
	family := c.Param("collection")
	collection, ok := devices.EventCollections[family]
	if !ok {
		s.respondError(c, badRequest("Invalid collection name"))
		return
	}

	uuid := c.Query("uuid")
	if uuid == "" {
		s.respondError(c, badRequest("UUID parameter is required"))
		return
	}

	companyHex := c.GetString(middleware.CompanyContextKey)
	companyID, err := primitive.ObjectIDFromHex(companyHex)
	if err != nil {
		s.respondError(c, badRequest("Invalid Company ID format"))
		return
	}

	ctx := c.Request.Context()
	if _, err := s.repo.GroupWithDevice(ctx, companyID, uuid); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.respondError(c, notFound("Device UUID not found in groups for the specified company"))
			return
		}
		s.respondError(c, err)
		return
	}

	filter := bson.M{"metadata.deviceUUID": uuid}
	if err := applyDateRange(c, filter, "timestamp"); err != nil {
		s.respondError(c, err)
		return
	}

	p := pagination.Parse(c.Query("page"), c.Query("size"), pagination.MaxSize)
	key := cache.QueryKey(cache.EventsKeyPattern, collection, companyHex, c.Request.URL.Query())

	s.cachedJSON(c, "device_events", key, s.config.EventsTTL, func() (interface{}, error) {
		raw, total, err := s.repo.FindEvents(ctx, collection, filter, p)
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			return nil, notFound("No data found for the given filters")
		}

		data := devices.Normalize(family, raw)
		return gin.H{
			"status":     "success",
			"message":    fmt.Sprintf("%d record(s) returned, max %d per page.", len(data), p.Size),
			"data":       data,
			"pagination": pagination.NewMeta(p, total),
		}, nil
	})
}

// applyDateRange adds a closed [start_date, end_date] window on the given
// field. Both bounds must be present together and be valid ISO-8601.
func applyDateRange(c *gin.Context, filter bson.M, field string) error {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		return nil
	}

	startDate, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return badRequest("Invalid date format. Use ISO 8601.")
	}
	endDate, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return badRequest("Invalid date format. Use ISO 8601.")
	}

	filter[field] = bson.M{"$gte": startDate, "$lte": endDate}
	return nil
}
