package config

import "time"

// Config holds runtime settings for the HealthKeeper CLI.
type Config struct {
	// StoreDSN is the sqlite DSN of the local store.
	StoreDSN string

	// SessionSecret signs the local session record.
	SessionSecret string

	// BackupPassphrase feeds the backup encryption key; BackupObjectKey is
	// the remote object the backup lives under.
	BackupPassphrase string
	BackupObjectKey  string

	// S3 connection settings. BaseEndpoint switches the client to an
	// S3-compatible server (MinIO etc.) with path-style addressing.
	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	// OpenFDABaseURL is the root of the drug-label API.
	OpenFDABaseURL string
	// RequestTimeout bounds every outbound HTTP request.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreDSN = "healthkeeper.db"
	c.SessionSecret = "healthkeeper-session-key-2024"
	c.BackupPassphrase = "healthkeeper-backup-encryption-key-2024"
	c.BackupObjectKey = "HealthKeeper_Backup.json"
	c.S3Region = "us-east-1"
	c.S3Bucket = "healthkeeper-backups"
	c.OpenFDABaseURL = "https://api.fda.gov"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
