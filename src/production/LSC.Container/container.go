package container

import (
	"context"
	"fmt"
	"sync"

	"gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.ApiService/health"
	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
	logger "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Logger"
	implementation "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Implementation"
	interfaces "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Interfaces"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Repositories groups the stores used by the API service
type Repositories struct {
	Devices  interfaces.DeviceRepository
	Readings interfaces.ReadingRepository
	Users    interfaces.UserRepository
}

// Container manages dependencies and their lifecycle
type Container struct {
	config *config.Config
	logger *logger.Logger

	mongoClient *mongo.Client
	gormDB      *gorm.DB

	healthChecker   *health.HealthChecker
	databaseManager *health.DatabaseManager
	repos           *Repositories

	mu sync.Mutex

	cleanupFuncs []func() error
}

// IngestorContainer manages dependencies for the MQTT Ingestor service
type IngestorContainer struct {
	config *config.IngestorConfig
	logger *logger.Logger
}

// NewApiContainer creates a new container for the API service
func NewApiContainer() (*Container, error) {
	cfg, err := config.LoadApiConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load API configuration: %w", err)
	}

	return NewContainerWithConfig(cfg, logger.NewLogger(&cfg.Logging)), nil
}

// NewContainerWithConfig builds a container around an already loaded configuration
func NewContainerWithConfig(cfg *config.Config, log *logger.Logger) *Container {
	return &Container{
		config: cfg,
		logger: log,
	}
}

// NewIngestorContainer creates a new container for the MQTT Ingestor service
func NewIngestorContainer() (*IngestorContainer, error) {
	cfg, err := config.LoadIngestorConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load ingestor configuration: %w", err)
	}

	return &IngestorContainer{
		config: cfg,
		logger: logger.NewLogger(&cfg.Logging),
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetConfig returns the ingestor configuration
func (c *IngestorContainer) GetConfig() *config.IngestorConfig {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.logger
}

// GetLogger returns the logger
func (c *IngestorContainer) GetLogger() *logger.Logger {
	return c.logger
}

// connectLocked opens the configured store once. Callers hold c.mu.
func (c *Container) connectLocked() error {
	switch c.config.Database.Driver {
	case config.DriverMongo:
		if c.mongoClient != nil {
			return nil
		}
		client, err := health.ConnectMongoWithTimeout(c.config, c.config.Database.ConnectTimeout)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.mongoClient = client
		c.logger.WithField("database", c.config.Database.MongoDatabase).Info("Connected to MongoDB")
	case config.DriverSQLite:
		if c.gormDB != nil {
			return nil
		}
		db, err := health.OpenSQLite(c.config)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.gormDB = db
		c.logger.WithField("path", c.config.Database.SQLitePath).Info("Opened SQLite database")
	default:
		return fmt.Errorf("unsupported database driver %q", c.config.Database.Driver)
	}
	return nil
}

// GetRepositories returns the stores for the configured driver
func (c *Container) GetRepositories() (*Repositories, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.repos != nil {
		return c.repos, nil
	}
	if err := c.connectLocked(); err != nil {
		return nil, err
	}

	timeout := c.config.Database.QueryTimeout
	if c.mongoClient != nil {
		db := c.mongoClient.Database(c.config.Database.MongoDatabase)
		c.repos = &Repositories{
			Devices:  implementation.NewMongoDeviceRepository(db, timeout),
			Readings: implementation.NewMongoReadingRepository(db, timeout),
			Users:    implementation.NewMongoUserRepository(db, timeout),
		}
	} else {
		c.repos = &Repositories{
			Devices:  implementation.NewSQLiteDeviceRepository(c.gormDB, timeout),
			Readings: implementation.NewSQLiteReadingRepository(c.gormDB, timeout),
			Users:    implementation.NewSQLiteUserRepository(c.gormDB, timeout),
		}
	}
	return c.repos, nil
}

// GetHealthChecker returns the health checker
func (c *Container) GetHealthChecker() (*health.HealthChecker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.healthChecker != nil {
		return c.healthChecker, nil
	}
	if err := c.connectLocked(); err != nil {
		return nil, fmt.Errorf("failed to get database for health checker: %w", err)
	}

	pinger := health.NewSQLitePinger(c.gormDB)
	if c.mongoClient != nil {
		pinger = health.NewMongoPinger(c.mongoClient)
	}
	c.healthChecker = health.NewHealthChecker(pinger, c.config.Database.QueryTimeout)
	return c.healthChecker, nil
}

// GetDatabaseManager returns the database manager
func (c *Container) GetDatabaseManager() (*health.DatabaseManager, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.databaseManager != nil {
		return c.databaseManager, nil
	}
	if err := c.connectLocked(); err != nil {
		return nil, fmt.Errorf("failed to get database for database manager: %w", err)
	}

	if c.mongoClient != nil {
		c.databaseManager = health.NewMongoDatabaseManager(c.mongoClient.Database(c.config.Database.MongoDatabase))
	} else {
		c.databaseManager = health.NewSQLiteDatabaseManager(c.gormDB)
	}
	return c.databaseManager, nil
}

// InitializeDatabase creates indexes or tables for the configured store
func (c *Container) InitializeDatabase(ctx context.Context) error {
	dbManager, err := c.GetDatabaseManager()
	if err != nil {
		return fmt.Errorf("failed to get database manager: %w", err)
	}

	if err := dbManager.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	c.logger.WithField("driver", c.config.Database.Driver).Info("Database initialized successfully")
	return nil
}

// HealthCheck performs a comprehensive health check
func (c *Container) HealthCheck(ctx context.Context) map[string]interface{} {
	healthChecker, err := c.GetHealthChecker()
	if err != nil {
		return map[string]interface{}{
			"status": health.StatusError,
			"error":  err.Error(),
		}
	}

	return healthChecker.GetHealthStatus(ctx)
}

// Shutdown gracefully shuts down the container and all its dependencies
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	c.mu.Lock()
	defer c.mu.Unlock()

	// Execute cleanup functions in reverse order
	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](); err != nil {
			c.logger.ErrorWithError(err, "Error during cleanup")
		}
	}
	c.cleanupFuncs = nil

	if c.mongoClient != nil {
		if err := c.mongoClient.Disconnect(ctx); err != nil {
			c.logger.ErrorWithError(err, "Error closing database connection")
		}
		c.mongoClient = nil
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				c.logger.ErrorWithError(err, "Error closing database connection")
			}
		}
		c.gormDB = nil
	}
	c.repos = nil
	c.healthChecker = nil
	c.databaseManager = nil

	c.logger.Info("Container shutdown complete")
	return nil
}

// Shutdown gracefully shuts down the ingestor container
func (c *IngestorContainer) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down ingestor container...")
	c.logger.Info("Ingestor container shutdown complete")
	return nil
}

// AddCleanupFunc adds a cleanup function
func (c *Container) AddCleanupFunc(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}
