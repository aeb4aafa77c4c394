package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.DBConfig {
	return config.DBConfig{
		Type: config.DBTypeMemory,
		Name: fmt.Sprintf("dbtest_%d", time.Now().UnixNano()),
	}
}

func TestConnect_Memory(t *testing.T) {
	db, err := Connect(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer db.Close()

	var fk int
	require.NoError(t, db.Get(&fk, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, fk)
}

func TestMigrate(t *testing.T) {
	cfg := memoryConfig()
	db, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, cfg, "../../migrations"))
	// second run is a no-op
	require.NoError(t, Migrate(db, cfg, "../../migrations"))

	var tables []string
	require.NoError(t, db.Select(&tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('countries', 'regions', 'cities') ORDER BY name"))
	assert.Equal(t, []string{"cities", "countries", "regions"}, tables)

	m, err := NewMigrator(db, cfg, "../../migrations")
	require.NoError(t, err)
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestMigrate_MissingSource(t *testing.T) {
	cfg := memoryConfig()
	db, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, Migrate(db, cfg, "does-not-exist"))
}
