package config

import (
	"flag"
	"os"
	"time"

	"github.com/osetrov/healthkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   sqlite DSN of the local store (default from Config)
//	-b string   S3 bucket holding backups (default from Config)
//	-e string   S3-compatible endpoint URL, empty for AWS (default from Config)
//	-t int      outbound request timeout in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-e", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "sqlite DSN of the local store")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket holding backups")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3-compatible endpoint URL (empty for AWS)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
