package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/models"
)

type generateAPIKeyRequest struct {
	CompanyID string `json:"companyId"`
}

// generateAPIKey regenerates the company's credential: every prior key is
// deactivated, then a fresh one is stored. Idempotent from the store's point
// of view; superseded keys remain as inactive records.
func (s *Server) generateAPIKey(c *gin.Context) {
	var req generateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CompanyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Company ID is required"})
		return
	}

	ctx := c.Request.Context()
	if err := s.repo.DeactivateCompanyKeys(ctx, req.CompanyID); err != nil {
		s.respondError(c, err)
		return
	}

	key, err := newAPIKeyToken()
	if err != nil {
		s.respondError(c, err)
		return
	}

	record := &models.APIKey{
		Key:       key,
		CompanyID: req.CompanyID,
		ExpiresAt: time.Now().Add(s.config.APIKeyValidity),
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.repo.InsertAPIKey(ctx, record); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.WithField("company_id", req.CompanyID).Info("Generated API key")
	c.JSON(http.StatusCreated, gin.H{"apiKey": key})
}

func newAPIKeyToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
