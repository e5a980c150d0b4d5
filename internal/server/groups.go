package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/database"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/middleware"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/pagination"
)

// getGroups returns the authenticated company's groups with their nested
// device uuid/id lists.
func (s *Server) getGroups(c *gin.Context) {
	companyID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CompanyContextKey))
	if err != nil {
		s.respondError(c, badRequest("Invalid Company ID format"))
		return
	}

	ctx := c.Request.Context()
	company, err := s.repo.GetCompany(ctx, companyID)
	if errors.Is(err, database.ErrNotFound) {
		s.respondError(c, notFound("Company not found"))
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}

	filter := bson.M{"company_id": companyID}
	if uuid := c.Query("devices.uuid"); uuid != "" {
		filter["devices.uuid"] = uuid
	}
	if deviceID := c.Query("devices.id"); deviceID != "" {
		filter["devices.id"] = deviceID
	}
	if id := c.Query("_id"); id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			s.respondError(c, badRequest("Invalid ID format"))
			return
		}
		filter["_id"] = oid
	}

	p := pagination.Parse(c.Query("page"), c.Query("size"), 0)
	groups, total, err := s.repo.FindGroups(ctx, filter, p)
	if err != nil {
		s.respondError(c, err)
		return
	}

	formatted := make([]gin.H, 0, len(groups))
	for _, group := range groups {
		devices := make([]gin.H, 0, len(group.Devices))
		for _, device := range group.Devices {
			devices = append(devices, gin.H{"uuid": device.UUID, "id": device.ID})
		}
		formatted = append(formatted, gin.H{
			"id":          group.ID.Hex(),
			"name":        group.Name,
			"device_type": group.DeviceType,
			"devices":     devices,
			"createdAt":   group.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"company": gin.H{
			"name": company.Name,
			"id":   company.ID.Hex(),
		},
		"groups":     formatted,
		"pagination": pagination.NewMeta(p, total),
	})
}
