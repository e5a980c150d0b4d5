package server

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/cache"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/database"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/devices"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/format"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/middleware"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/pagination"
)

// getDeviceAlerts returns paginated alert documents for one device, ascending
// by creation time. Alerts keep their stored shape, passed through the
// document formatter.
func (s *Server) getDeviceAlerts(c *gin.Context) {
	family := c.Param("collection")
	collection, ok := devices.AlertCollections[family]
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

	filter := bson.M{"uuid": uuid}
	if err := applyDateRange(c, filter, "createdAt"); err != nil {
		s.respondError(c, err)
		return
	}

	p := pagination.Parse(c.Query("page"), c.Query("size"), pagination.MaxSize)
	key := cache.QueryKey(cache.AlertsKeyPattern, collection, companyHex, c.Request.URL.Query())

	s.cachedJSON(c, "device_alerts", key, s.config.AlertsTTL, func() (interface{}, error) {
		docs, total, err := s.repo.FindAlerts(ctx, collection, filter, p)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return nil, notFound("No alerts found for the specified UUID")
		}

		formatted := make([]interface{}, 0, len(docs))
		for _, doc := range docs {
			formatted = append(formatted, format.Document(doc))
		}

		return gin.H{
			"status":     "success",
			"message":    fmt.Sprintf("%d alert(s) found.", len(docs)),
			"data":       formatted,
			"pagination": pagination.NewMeta(p, total),
		}, nil
	})
}
