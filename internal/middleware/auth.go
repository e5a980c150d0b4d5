package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/database"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/models"
)

// APIKeyStore is the credential lookup the gate depends on.
type APIKeyStore interface {
	GetActiveAPIKey(ctx context.Context, key, companyID string) (*models.APIKey, error)
}

type AuthMiddleware struct {
	store  APIKeyStore
	logger *logrus.Logger
}

func NewAuthMiddleware(store APIKeyStore, logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		store:  store,
		logger: logger,
	}
}

// ValidateAPIKey is the authorization gate. It runs before any data is
// touched: requests without a valid, active, unexpired key for the claimed
// company never reach a handler. On success the company ID is trusted for
// the remainder of the request.
func (m *AuthMiddleware) ValidateAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(APIKeyHeader)
		companyID := c.GetHeader(CompanyHeader)

		if apiKey == "" || companyID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "API Key and Company ID are required"})
			c.Abort()
			return
		}

		record, err := m.store.GetActiveAPIKey(c.Request.Context(), apiKey, companyID)
		if errors.Is(err, database.ErrNotFound) {
			m.logger.WithFields(logrus.Fields{
				"company_id": companyID,
			}).Warn("Invalid API key attempt")
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid or inactive API Key"})
			c.Abort()
			return
		}
		if err != nil {
			m.logger.WithError(err).Error("Failed to validate API key")
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
			c.Abort()
			return
		}

		if record.Expired(time.Now()) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "API Key expired"})
			c.Abort()
			return
		}

		c.Set(CompanyContextKey, companyID)
		c.Set(APIKeyContextKey, record.ID.Hex())
		c.Next()
	}
}
