package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config holds all API service configuration
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Dashboard DashboardConfig `json:"dashboard"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Auth      AuthConfig      `json:"auth"`
	Logging   LoggingConfig   `json:"logging"`
	CORS      CORSConfig      `json:"cors"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string        `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig selects and configures the document store
type DatabaseConfig struct {
	Driver         string        `json:"driver"` // mongo or sqlite
	MongoURI       string        `json:"-"`
	MongoDatabase  string        `json:"mongo_database"`
	SQLitePath     string        `json:"sqlite_path"`
	ConnectTimeout time.Duration `json:"connect_timeout"`
	QueryTimeout   time.Duration `json:"query_timeout"`
}

// DashboardConfig tunes the device aggregator
type DashboardConfig struct {
	// LookupConcurrency caps concurrent per-device latest reading lookups
	LookupConcurrency int  `json:"lookup_concurrency"`
	UseBatchLookup    bool `json:"use_batch_lookup"`
}

// RateLimitConfig throttles reading submissions per hardware id. Zero rate disables it.
type RateLimitConfig struct {
	ReadingsPerSecond float64 `json:"readings_per_second"`
	Burst             int     `json:"burst"`
}

// AuthConfig holds account related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcrypt_cost"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level        string `json:"level"`
	Format       string `json:"format"` // json or text
	Output       string `json:"output"` // stdout, stderr, or file path
	EnableCaller bool   `json:"enable_caller"`
	MaxSizeMB    int    `json:"max_size_mb"`
	MaxBackups   int    `json:"max_backups"`
	MaxAgeDays   int    `json:"max_age_days"`
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

// MQTTConfig holds MQTT-related configuration
type MQTTConfig struct {
	BrokerHost  string        `json:"broker_host"`
	BrokerPort  int           `json:"broker_port"`
	BrokerUser  string        `json:"broker_user"`
	BrokerPass  string        `json:"-"`
	UseTLS      bool          `json:"use_tls"`
	CACertPath  string        `json:"ca_cert_path"`
	Topic       string        `json:"topic"`
	ErrorTopic  string        `json:"error_topic"`
	ClientID    string        `json:"client_id"`
	SharedGroup string        `json:"shared_group"`
	KeepAlive   time.Duration `json:"keep_alive"`
	PingTimeout time.Duration `json:"ping_timeout"`
}

// BatchConfig holds batch processing configuration
type BatchConfig struct {
	Size   int           `json:"size"`
	Window time.Duration `json:"window"`
}

// IngestorConfig holds configuration for the MQTT Ingestor service
type IngestorConfig struct {
	Server            ServerConfig  `json:"server"`
	MQTT              MQTTConfig    `json:"mqtt"`
	Batch             BatchConfig   `json:"batch"`
	Logging           LoggingConfig `json:"logging"`
	ApiServiceURL     string        `json:"api_service_url"`
	ApiRequestTimeout time.Duration `json:"api_request_timeout"`
}

// LoadIngestorConfig loads configuration for the MQTT Ingestor service
func LoadIngestorConfig() (*IngestorConfig, error) {
	// Missing .env is fine, variables may be set directly
	_ = godotenv.Load()

	config := &IngestorConfig{
		Server: ServerConfig{
			Port:         getEnv("INGESTOR_PORT", "9003"),
			ReadTimeout:  getDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("IDLE_TIMEOUT", 120*time.Second),
		},
		MQTT: MQTTConfig{
			BrokerHost:  getEnv("BROKER_HOST", "localhost"),
			BrokerPort:  getInt("BROKER_PORT", 1883),
			BrokerUser:  getEnv("BROKER_USER", ""),
			BrokerPass:  getEnv("BROKER_PASS", ""),
			UseTLS:      getBool("BROKER_TLS", false),
			CACertPath:  getEnv("BROKER_CA_FILE", ""),
			Topic:       getEnv("MQTT_TOPIC", "collars/+/readings"),
			ErrorTopic:  getEnv("MQTT_ERROR_TOPIC", "ingestor/errors"),
			ClientID:    getEnv("MQTT_CLIENT_ID", "collar-ingestor"),
			SharedGroup: getEnv("MQTT_SHARED_GROUP", ""),
			KeepAlive:   getDuration("MQTT_KEEP_ALIVE", 30*time.Second),
			PingTimeout: getDuration("MQTT_PING_TIMEOUT", 10*time.Second),
		},
		Batch: BatchConfig{
			Size:   getInt("BATCH_SIZE", 100),
			Window: getDuration("BATCH_WINDOW", 2*time.Second),
		},
		Logging:           loadLoggingConfig(),
		ApiServiceURL:     getEnv("API_SERVICE_URL", "http://api-service:9002"),
		ApiRequestTimeout: getDuration("API_REQUEST_TIMEOUT", 10*time.Second),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadApiConfig loads configuration for the API service
func LoadApiConfig() (*Config, error) {
	// Missing .env is fine, variables may be set directly
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "9002"),
			ReadTimeout:  getDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(getEnv("DATABASE_DRIVER", DriverMongo)),
			MongoURI:       getEnv("MONGODB_URI", ""),
			MongoDatabase:  getEnv("MONGODB_DATABASE", "livestock"),
			SQLitePath:     getEnv("SQLITE_PATH", "collars.db"),
			ConnectTimeout: getDuration("DATABASE_CONNECT_TIMEOUT", 20*time.Second),
			QueryTimeout:   getDuration("DATABASE_QUERY_TIMEOUT", 5*time.Second),
		},
		Dashboard: DashboardConfig{
			LookupConcurrency: getInt("DASHBOARD_LOOKUP_CONCURRENCY", 8),
			UseBatchLookup:    getBool("DASHBOARD_BATCH_LOOKUP", true),
		},
		RateLimit: RateLimitConfig{
			ReadingsPerSecond: getFloat("READING_RATE_LIMIT", 0),
			Burst:             getInt("READING_RATE_BURST", 5),
		},
		Auth: AuthConfig{
			BcryptCost: getInt("BCRYPT_COST", bcrypt.DefaultCost),
		},
		Logging: loadLoggingConfig(),
		CORS: CORSConfig{
			AllowedOrigins:   getStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders:   getStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}),
			ExposedHeaders:   getStringSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Content-Disposition", "X-Request-ID"}),
			AllowCredentials: getBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getInt("CORS_MAX_AGE", 43200), // 12 hours
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:        getEnv("LOG_LEVEL", "info"),
		Format:       getEnv("LOG_FORMAT", "text"),
		Output:       getEnv("LOG_OUTPUT", "stdout"),
		EnableCaller: getBool("LOG_ENABLE_CALLER", false),
		MaxSizeMB:    getInt("LOG_MAX_SIZE_MB", 10),
		MaxBackups:   getInt("LOG_MAX_BACKUPS", 5),
		MaxAgeDays:   getInt("LOG_MAX_AGE_DAYS", 28),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required when DATABASE_DRIVER=%s", DriverMongo)
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DATABASE_DRIVER=%s", DriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (expected %s or %s)", c.Database.Driver, DriverMongo, DriverSQLite)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DATABASE_QUERY_TIMEOUT must be positive")
	}
	if c.Dashboard.LookupConcurrency < 1 {
		return fmt.Errorf("DASHBOARD_LOOKUP_CONCURRENCY must be at least 1")
	}
	if c.RateLimit.ReadingsPerSecond < 0 {
		return fmt.Errorf("READING_RATE_LIMIT must not be negative")
	}
	if c.RateLimit.ReadingsPerSecond > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("READING_RATE_BURST must be at least 1 when rate limiting is enabled")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// Validate validates the ingestor configuration
func (c *IngestorConfig) Validate() error {
	if c.ApiServiceURL == "" {
		return fmt.Errorf("API_SERVICE_URL is required")
	}
	if c.MQTT.Topic == "" {
		return fmt.Errorf("MQTT_TOPIC is required")
	}
	if c.Batch.Size < 1 {
		return fmt.Errorf("BATCH_SIZE must be at least 1")
	}
	if c.Batch.Window <= 0 {
		return fmt.Errorf("BATCH_WINDOW must be positive")
	}
	return nil
}

// GetMQTTBrokerURL returns the MQTT broker URL
func (c *IngestorConfig) GetMQTTBrokerURL() string {
	scheme := "tcp"
	if c.MQTT.UseTLS {
		scheme = "tcps"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.MQTT.BrokerHost, c.MQTT.BrokerPort)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return intValue
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return floatValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if value == "1" || value == "true" || value == "TRUE" {
		return true
	}
	if value == "0" || value == "false" || value == "FALSE" {
		return false
	}
	log.Fatalf("invalid %s: %q (expected true/false or 1/0)", key, value)
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return duration
}

func getStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
