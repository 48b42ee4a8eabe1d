package health

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Name() string { return "stub" }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func TestGetHealthStatus_OK(t *testing.T) {
	status := NewHealthChecker(stubPinger{}, time.Second).GetHealthStatus(context.Background())

	assert.Equal(t, StatusOK, status["status"])
	checks := status["checks"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"status": StatusOK}, checks["stub"])
}

func TestGetHealthStatus_Degraded(t *testing.T) {
	status := NewHealthChecker(stubPinger{err: errors.New("no route")}, time.Second).GetHealthStatus(context.Background())

	assert.Equal(t, StatusDegraded, status["status"])
	check := status["checks"].(map[string]interface{})["stub"].(map[string]interface{})
	assert.Equal(t, StatusError, check["status"])
	assert.Contains(t, check["error"], "no route")
}

func TestSQLiteLifecycle(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "collars.db")}}

	db, err := OpenSQLite(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, NewSQLiteDatabaseManager(db).CreateSchema(context.Background()))
	for _, table := range []string{"devices", "readings", "users"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// migrating twice is a no-op
	require.NoError(t, NewSQLiteDatabaseManager(db).CreateSchema(context.Background()))

	checker := NewHealthChecker(NewSQLitePinger(db), time.Second)
	assert.NoError(t, checker.CheckDatabaseHealth(context.Background()))
	assert.Equal(t, StatusOK, checker.GetHealthStatus(context.Background())["status"])

	require.NoError(t, sqlDB.Close())
	assert.Error(t, checker.CheckDatabaseHealth(context.Background()))
}

func TestCreateSchema_NoDatabase(t *testing.T) {
	assert.Error(t, (&DatabaseManager{}).CreateSchema(context.Background()))
}

func TestMongoPinger_NilClient(t *testing.T) {
	p := NewMongoPinger(nil)
	assert.Equal(t, config.DriverMongo, p.Name())
	assert.Error(t, p.Ping(context.Background()))
}
