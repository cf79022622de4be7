package main

import (
	"context"
	"log"
	"os"

	"github.com/osetrov/healthkeeper/internal/buildinfo"
	"github.com/osetrov/healthkeeper/internal/client/cli"
	"github.com/osetrov/healthkeeper/internal/client/config"
)

// The healthkeeper binary runs the interactive shell: local sqlite store,
// S3-backed encrypted backups, and openFDA interaction checks, all configured
// through config.LoadConfig (defaults, optional JSON file, flags).
func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
