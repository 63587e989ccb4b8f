package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	cfg, err := FromViper(New())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1000, cfg.DatasetRecords)
	assert.Equal(t, 50, cfg.DatasetSupplement)
	assert.Equal(t, "cat_health_dataset_supplemented.csv", cfg.DatasetOutput)
	assert.Equal(t, 5*time.Second, cfg.PredictorTimeout)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "text", cfg.EffectiveLogFormat())
}

func TestEffectiveLogFormat(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ENV", "production")
	cfg, err := FromViper(New())
	require.NoError(t, err)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "json", cfg.EffectiveLogFormat())

	t.Setenv("LOG_FORMAT", "text")
	cfg, err = FromViper(New())
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.EffectiveLogFormat())

	dev := &Config{Env: "development", LogFormat: "json"}
	assert.Equal(t, "json", dev.EffectiveLogFormat())
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("DATASET_RECORDS", "20")
	t.Setenv("SEED", "42")
	t.Setenv("EXPORT_S3_PATH_STYLE", "true")

	cfg, err := FromViper(New())
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 20, cfg.DatasetRecords)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.ExportS3PathStyle)
}

func TestValidate(t *testing.T) {
	c := &Config{StoreDriver: DriverPostgres}
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)

	c.DBDSN = "postgres://localhost/catgen"
	assert.NoError(t, c.Validate())

	c = &Config{StoreDriver: "mongo"}
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)

	c = &Config{StoreDriver: DriverMemory, DatasetRecords: -1}
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
}
