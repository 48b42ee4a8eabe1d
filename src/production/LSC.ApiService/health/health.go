package health

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
	implementation "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Implementation"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusDegraded = "degraded"
)

// Pinger is a store that can report its own reachability
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

type mongoPinger struct {
	client *mongo.Client
}

// NewMongoPinger pings the primary
func NewMongoPinger(client *mongo.Client) Pinger {
	return &mongoPinger{client: client}
}

func (p *mongoPinger) Name() string { return config.DriverMongo }

func (p *mongoPinger) Ping(ctx context.Context) error {
	if p.client == nil {
		return fmt.Errorf("mongo client is nil")
	}
	return p.client.Ping(ctx, readpref.Primary())
}

type sqlitePinger struct {
	db *gorm.DB
}

func NewSQLitePinger(db *gorm.DB) Pinger {
	return &sqlitePinger{db: db}
}

func (p *sqlitePinger) Name() string { return config.DriverSQLite }

func (p *sqlitePinger) Ping(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// HealthChecker provides health check functionality
type HealthChecker struct {
	pinger  Pinger
	timeout time.Duration
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(pinger Pinger, timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthChecker{pinger: pinger, timeout: timeout}
}

// CheckDatabaseHealth pings the store within the configured timeout
func (h *HealthChecker) CheckDatabaseHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// GetHealthStatus returns the current health status
func (h *HealthChecker) GetHealthStatus(ctx context.Context) map[string]interface{} {
	check := map[string]interface{}{"status": StatusOK}
	overall := StatusOK
	if err := h.CheckDatabaseHealth(ctx); err != nil {
		check["status"] = StatusError
		check["error"] = err.Error()
		overall = StatusDegraded
	}

	return map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
		"status":    overall,
		"checks": map[string]interface{}{
			h.pinger.Name(): check,
		},
	}
}

// DatabaseManager bootstraps the schema of whichever store is configured
type DatabaseManager struct {
	mongoDB *mongo.Database
	gormDB  *gorm.DB
}

func NewMongoDatabaseManager(db *mongo.Database) *DatabaseManager {
	return &DatabaseManager{mongoDB: db}
}

func NewSQLiteDatabaseManager(db *gorm.DB) *DatabaseManager {
	return &DatabaseManager{gormDB: db}
}

// CreateSchema creates Mongo indexes or migrates the SQLite tables
func (dm *DatabaseManager) CreateSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch {
	case dm.mongoDB != nil:
		return implementation.EnsureMongoIndexes(ctx, dm.mongoDB)
	case dm.gormDB != nil:
		if err := dm.gormDB.WithContext(ctx).AutoMigrate(implementation.SQLiteModels()...); err != nil {
			return fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("no database configured")
	}
}

// ConnectMongoWithTimeout creates a MongoDB connection with a timeout context
func ConnectMongoWithTimeout(cfg *config.Config, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.Database.MongoURI)

	// Atlas SRV clusters require TLS
	if strings.HasPrefix(cfg.Database.MongoURI, "mongodb+srv://") {
		clientOptions.SetTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
		})
	}

	clientOptions.SetServerSelectionTimeout(timeout)
	clientOptions.SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("unable to ping MongoDB: %w", err)
	}

	return client, nil
}

// OpenSQLite opens the SQLite file at SQLITE_PATH
func OpenSQLite(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.SQLitePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open SQLite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unable to access SQLite pool: %w", err)
	}
	// SQLite allows one writer at a time
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
