package server

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/cache"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/database"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/devices"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/middleware"
)

// notAvailableReading is the out-of-range sentinel a disconnected channel
// probe reports in device detail documents.
const notAvailableReading = -128

// getDeviceResume locates a device without knowing its family up front: the
// fixed collection list is probed in order and the first company-visible
// match wins. Later collections are never consulted after a match.
func (s *Server) getDeviceResume(c *gin.Context) {
	uuid := c.Query("uuid")
	name := c.Query("name")
	id := c.Query("_id")
	if uuid == "" && name == "" && id == "" {
		s.respondError(c, badRequest("At least one search parameter (uuid, name, _id) is required"))
		return
	}

	companyHex := c.GetString(middleware.CompanyContextKey)
	companyID, err := primitive.ObjectIDFromHex(companyHex)
	if err != nil {
		s.respondError(c, badRequest("Invalid Company ID format"))
		return
	}

	searchQuery := bson.M{}
	if uuid != "" {
		searchQuery["uuid"] = uuid
	}
	if name != "" {
		searchQuery["name"] = name
	}
	if id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			s.respondError(c, badRequest("Invalid ID format"))
			return
		}
		searchQuery["_id"] = oid
	}

	ctx := c.Request.Context()

	// With a known UUID the membership check runs before the cache read, so
	// a device moved out of the company's groups disappears immediately
	// instead of lingering for the TTL. Searches by name or _id resolve the
	// UUIDs during the scan and check membership there.
	if uuid != "" {
		if _, err := s.repo.GroupWithDevice(ctx, companyID, uuid); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				s.respondError(c, notFound("Device UUID not found in groups for the specified company"))
				return
			}
			s.respondError(c, err)
			return
		}
	}

	key := cache.QueryKey(cache.DevicesKeyPattern, "resume", companyHex, c.Request.URL.Query())
	s.cachedJSON(c, "device_resume", key, s.config.DevicesTTL, func() (interface{}, error) {
		for _, probe := range devices.ScanOrder {
			found, err := s.repo.FindDevices(ctx, probe.Name, searchQuery)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				continue
			}

			uuids := make([]string, 0, len(found))
			for _, device := range found {
				uuids = append(uuids, device.UUID)
			}
			if _, err := s.repo.GroupWithAnyDevice(ctx, companyID, uuids); err != nil {
				if errors.Is(err, database.ErrNotFound) {
					continue
				}
				return nil, err
			}

			result := make([]gin.H, 0, len(found))
			for _, device := range found {
				result = append(result, gin.H{
					"uuid":        device.UUID,
					"name":        device.Name,
					"id":          device.ID.Hex(),
					"device_type": probe.Family,
					"createdAt":   device.CreatedAt,
				})
			}
			return gin.H{
				"status":     "success",
				"collection": probe.Name,
				"data":       result,
			}, nil
		}

		return nil, notFound("Device not found in any collection for the specified company")
	})
}

// getAllDevices returns a flat summary of every device registered to the
// company's groups, probing each family collection for the group UUIDs.
func (s *Server) getAllDevices(c *gin.Context) {
	companyHex := c.GetString(middleware.CompanyContextKey)
	companyID, err := primitive.ObjectIDFromHex(companyHex)
	if err != nil {
		s.respondError(c, badRequest("Invalid Company ID format"))
		return
	}

	key := cache.QueryKey(cache.DevicesKeyPattern, "all", companyHex, c.Request.URL.Query())
	s.cachedJSON(c, "devices_data", key, s.config.DevicesTTL, func() (interface{}, error) {
		ctx := c.Request.Context()

		company, err := s.repo.GetCompany(ctx, companyID)
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("Company not found")
		}
		if err != nil {
			return nil, err
		}

		groups, err := s.repo.GroupsForCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		var uuids []string
		for _, group := range groups {
			for _, device := range group.Devices {
				uuids = append(uuids, device.UUID)
			}
		}

		summaries := make([]gin.H, 0, len(uuids))
		if len(uuids) > 0 {
			for _, probe := range devices.ScanOrder {
				found, err := s.repo.FindDevices(ctx, probe.Name, bson.M{"uuid": bson.M{"$in": uuids}})
				if err != nil {
					return nil, err
				}
				for _, device := range found {
					summary := gin.H{
						"last_time":   device.UpdatedAt,
						"deviceAlias": device.Name,
						"deviceUUID":  device.UUID,
						"battery":     device.Battery,
						"device_type": probe.Family,
					}
					if d := device.Details; d != nil {
						summary["temperature"] = d.Temperature
						summary["temperature_1"] = channelReading(d.TemperatureEx1)
						summary["temperature_2"] = channelReading(d.TemperatureEx2)
						summary["humidity"] = d.Humidity
					}
					summaries = append(summaries, summary)
				}
			}
		}

		return gin.H{
			"status": "success",
			"data": gin.H{
				"companyName": company.Name,
				"companyId":   company.ID.Hex(),
				"devices":     summaries,
			},
		}, nil
	})
}

func channelReading(v *float64) *float64 {
	if v != nil && *v == notAvailableReading {
		return nil
	}
	return v
}
