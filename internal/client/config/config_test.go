package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "healthkeeper.db", c.StoreDSN)
	assert.Equal(t, "HealthKeeper_Backup.json", c.BackupObjectKey)
	assert.Equal(t, "healthkeeper-backups", c.S3Bucket)
	assert.Equal(t, "https://api.fda.gov", c.OpenFDABaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Empty(t, c.S3BaseEndpoint)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "healthkeeper.db", cfg.StoreDSN)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
