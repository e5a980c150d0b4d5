package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/format"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/pagination"
)

// getCompanies returns one page of company documents in the stable wire
// shape, filterable by name and identifier.
func (s *Server) getCompanies(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("size"), 0)

	filter := bson.M{}
	if name := c.Query("name"); name != "" {
		filter["name"] = name
	}
	if id := c.Query("_id"); id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			s.respondError(c, badRequest("Invalid ID format"))
			return
		}
		filter["_id"] = oid
	}

	docs, total, err := s.repo.FindCompanies(c.Request.Context(), filter, p)
	if err != nil {
		s.respondError(c, err)
		return
	}

	formatted := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		formatted = append(formatted, format.Document(doc))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"data":       formatted,
		"pagination": pagination.NewMeta(p, total),
	})
}
