package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/cache"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/config"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/database"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/server"
	"github.com/Oscar-Sigmais/REST-API-CLIENT/pkg/metrics"
)

// Version is overridden at build time.
var Version = "1.0.0"

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	metrics.Initialize()

	// Connect the document store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewDB(ctx, &database.Config{
		URI:          cfg.MongoDB.URI,
		Database:     cfg.MongoDB.Database,
		QueryTimeout: cfg.MongoDB.QueryTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logger.WithError(err).Error("Failed to close database")
		}
	}()

	// Connect the cache. The cache is optional at runtime: requests degrade
	// to direct queries when it is unreachable.
	cacheStore, err := cache.NewCache(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	if err := cacheStore.Ping(ctx); err != nil {
		logger.WithError(err).Warn("Cache unreachable at startup, continuing without it")
	}

	srv := server.NewServer(&server.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		EventsTTL:      cfg.Cache.EventsTTL,
		AlertsTTL:      cfg.Cache.AlertsTTL,
		DevicesTTL:     cfg.Cache.DevicesTTL,
		APIKeyValidity: cfg.APIKeys.Validity,
	}, database.NewRepository(db), cacheStore, logger)

	if err := srv.Run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
