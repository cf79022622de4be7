package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"store_dsn":        "from-json.db",
		"s3_bucket":        "json-bucket",
		"s3_base_endpoint": "http://minio:9000",
		"request_timeout":  "10s",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "from-json.db", cfg.StoreDSN)
		assert.Equal(t, "json-bucket", cfg.S3Bucket)
		assert.Equal(t, "http://minio:9000", cfg.S3BaseEndpoint)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	})

	t.Run("absent fields keep earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"s3_bucket": "json-bucket",
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{StoreDSN: "defaults.db", RequestTimeout: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "json-bucket", cfg.S3Bucket)
		assert.Equal(t, "defaults.db", cfg.StoreDSN)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{StoreDSN: "defaults.db"}
		parseJson(cfg)

		assert.Equal(t, "defaults.db", cfg.StoreDSN)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
