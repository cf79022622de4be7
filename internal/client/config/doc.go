// Package config loads runtime configuration for the HealthKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   sqlite DSN of the local store
//	-b string   S3 bucket holding backups
//	-e string   S3-compatible endpoint URL (empty for AWS)
//	-t int      outbound request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "store_dsn": "healthkeeper.db",
//	  "s3_bucket": "healthkeeper-backups",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "request_timeout": "15s"
//	}
//
// Credentials (s3_access_key, s3_secret_key, session_secret,
// backup_passphrase) are JSON-only on purpose; secrets on the command line
// leak through process listings.
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
