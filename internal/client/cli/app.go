// Package cli implements the interactive HealthKeeper shell: account
// commands, the daily medication checklist, interaction checks, and cloud
// backup.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/osetrov/healthkeeper/internal/client/blob"
	"github.com/osetrov/healthkeeper/internal/client/config"
	"github.com/osetrov/healthkeeper/internal/client/openfda"
	"github.com/osetrov/healthkeeper/internal/client/services"
	"github.com/osetrov/healthkeeper/internal/client/store"
	"github.com/osetrov/healthkeeper/internal/logging"
)

type App struct {
	config       *config.Config
	auth         services.AuthService
	meds         services.MedicationService
	backup       services.BackupService
	interactions services.InteractionService

	repos  *store.Repositories
	reader *bufio.Reader
	log    logging.Logger
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	repos, err := store.InitDatabase(ctx, c.StoreDSN)
	if err != nil {
		return nil, err
	}

	blobStore, err := blob.NewS3Store(ctx, blob.S3Config{
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}

	labels := openfda.NewClient(c.OpenFDABaseURL, c.RequestTimeout)

	auth := services.NewAuthService(repos.Keys, []byte(c.SessionSecret), log)
	meds := services.NewMedicationService(auth, repos.Keys, repos.Statuses, log)
	backup := services.NewBackupService(auth, meds, repos.Keys, repos.Statuses,
		repos, blobStore, c.BackupObjectKey, c.BackupPassphrase, log)
	interactions := services.NewInteractionService(
		services.MedicationDrugLister{Meds: meds}, labels, log)

	return &App{
		config:       c,
		auth:         auth,
		meds:         meds,
		backup:       backup,
		interactions: interactions,
		repos:        repos,
		reader:       bufio.NewReader(os.Stdin),
		log:          log,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.repos.DB.Close()
	a.Root(ctx)
}

func (a *App) isSignedIn(ctx context.Context) bool {
	return a.auth.IsSignedIn(ctx)
}
