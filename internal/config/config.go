package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	MongoDB MongoConfig   `mapstructure:"mongodb"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Cache   CacheConfig   `mapstructure:"cache"`
	APIKeys APIKeysConfig `mapstructure:"api_keys"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// MongoConfig holds the document store configuration
type MongoConfig struct {
	URI          string        `mapstructure:"uri"`
	Database     string        `mapstructure:"database"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// RedisConfig holds the cache store configuration
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CacheConfig holds the per-endpoint response cache TTLs
type CacheConfig struct {
	EventsTTL  time.Duration `mapstructure:"events_ttl"`
	AlertsTTL  time.Duration `mapstructure:"alerts_ttl"`
	DevicesTTL time.Duration `mapstructure:"devices_ttl"`
}

// APIKeysConfig holds API key issuance settings
type APIKeysConfig struct {
	Validity time.Duration `mapstructure:"validity"`
}

var (
	// Global configuration
	globalConfig Config
)

// Load loads the configuration from config files
func Load() error {
	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.AddConfigPath(path)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	setDefaults()

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal the config
	if err := viper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("server.port", 8005)
	viper.SetDefault("server.host", "0.0.0.0")

	viper.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongodb.database", "sigmais")
	viper.SetDefault("mongodb.query_timeout", "5s")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dial_timeout", "2s")
	viper.SetDefault("redis.read_timeout", "1s")
	viper.SetDefault("redis.write_timeout", "1s")

	viper.SetDefault("cache.events_ttl", "600s")
	viper.SetDefault("cache.alerts_ttl", "1800s")
	viper.SetDefault("cache.devices_ttl", "3600s")

	viper.SetDefault("api_keys.validity", "8760h")
}

// GetConfig returns the global configuration
func GetConfig() *Config {
	return &globalConfig
}

// GetMongoConfig returns the document store configuration
func GetMongoConfig() MongoConfig {
	return globalConfig.MongoDB
}

// GetServerConfig returns the server configuration
func GetServerConfig() ServerConfig {
	return globalConfig.Server
}

// GetRedisConfig returns the redis configuration
func GetRedisConfig() RedisConfig {
	return globalConfig.Redis
}

// GetCacheConfig returns the response cache configuration
func GetCacheConfig() CacheConfig {
	return globalConfig.Cache
}
