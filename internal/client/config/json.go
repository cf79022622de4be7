package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/osetrov/healthkeeper/internal/flagx"
	"github.com/osetrov/healthkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "15s"
// or as integer nanoseconds. Zero-valued fields are treated as absent and do
// not override earlier sources.
type JsonConfig struct {
	StoreDSN         string         `json:"store_dsn"`
	SessionSecret    string         `json:"session_secret"`
	BackupPassphrase string         `json:"backup_passphrase"`
	BackupObjectKey  string         `json:"backup_object_key"`
	S3Region         string         `json:"s3_region"`
	S3Bucket         string         `json:"s3_bucket"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
	OpenFDABaseURL   string         `json:"openfda_base_url"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. No flag means no JSON is loaded. Read and
// unmarshal errors panic; configuration problems should stop startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.StoreDSN, jc.StoreDSN)
	overlayString(&cfg.SessionSecret, jc.SessionSecret)
	overlayString(&cfg.BackupPassphrase, jc.BackupPassphrase)
	overlayString(&cfg.BackupObjectKey, jc.BackupObjectKey)
	overlayString(&cfg.S3Region, jc.S3Region)
	overlayString(&cfg.S3Bucket, jc.S3Bucket)
	overlayString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlayString(&cfg.S3AccessKey, jc.S3AccessKey)
	overlayString(&cfg.S3SecretKey, jc.S3SecretKey)
	overlayString(&cfg.OpenFDABaseURL, jc.OpenFDABaseURL)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
