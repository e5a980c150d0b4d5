package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/cache"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/middleware"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/models"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/pagination"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/pkg/metrics"
)

// Repository is the document store surface the handlers query through.
// database.Repository implements it; tests substitute counting fakes.
type Repository interface {
	GetActiveAPIKey(ctx context.Context, key, companyID string) (*models.APIKey, error)
	DeactivateCompanyKeys(ctx context.Context, companyID string) error
	InsertAPIKey(ctx context.Context, record *models.APIKey) error
	FindCompanies(ctx context.Context, filter bson.M, p pagination.Params) ([]bson.M, int64, error)
	GetCompany(ctx context.Context, id primitive.ObjectID) (*models.Company, error)
	FindGroups(ctx context.Context, filter bson.M, p pagination.Params) ([]models.Group, int64, error)
	GroupWithDevice(ctx context.Context, companyID primitive.ObjectID, uuid string) (*models.Group, error)
	GroupWithAnyDevice(ctx context.Context, companyID primitive.ObjectID, uuids []string) (*models.Group, error)
	GroupsForCompany(ctx context.Context, companyID primitive.ObjectID) ([]models.Group, error)
	FindDevices(ctx context.Context, collection string, filter bson.M) ([]models.Device, error)
	FindEvents(ctx context.Context, collection string, filter bson.M, p pagination.Params) ([]models.RawEvent, int64, error)
	FindAlerts(ctx context.Context, collection string, filter bson.M, p pagination.Params) ([]bson.M, int64, error)
}

// Config holds the server settings and per-endpoint cache TTLs.
type Config struct {
	Host           string
	Port           int
	Version        string
	EventsTTL      time.Duration
	AlertsTTL      time.Duration
	DevicesTTL     time.Duration
	APIKeyValidity time.Duration
}

type Server struct {
	config *Config
	repo   Repository
	cache  cache.Store
	logger *logrus.Logger
	router *gin.Engine
}

func NewServer(config *Config, repo Repository, cacheStore cache.Store, logger *logrus.Logger) *Server {
	s := &Server{
		config: config,
		repo:   repo,
		cache:  cacheStore,
		logger: logger,
		router: gin.New(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())
	s.router.Use(middleware.NewMetricsMiddleware(s.logger).Handler())

	s.router.POST("/api-key/generate-api-key", s.generateAPIKey)

	auth := middleware.NewAuthMiddleware(s.repo, s.logger)
	guarded := s.router.Group("/", auth.ValidateAPIKey())
	{
		guarded.GET("/companies/data", s.getCompanies)
		guarded.GET("/groups/data", s.getGroups)
		guarded.GET("/devices/data", s.getAllDevices)
		guarded.GET("/:collection/device/resume", s.getDeviceResume)
		guarded.GET("/:collection/device/events", s.getDeviceEvents)
		guarded.GET("/:collection/device/alerts", s.getDeviceAlerts)
	}

	s.router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": s.config.Version})
	})
	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is running!"})
	})
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.WithField("addr", addr).Info("Starting server")
	return s.router.Run(addr)
}
