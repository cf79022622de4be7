// Package store opens the local sqlite database, applies migrations, and
// hands out the repositories built on top of it.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/osetrov/healthkeeper/internal/client/migrations"
	"github.com/osetrov/healthkeeper/internal/client/models"
	"github.com/osetrov/healthkeeper/internal/client/repositories/keystore"
	"github.com/osetrov/healthkeeper/internal/client/repositories/statuses"
	"github.com/osetrov/healthkeeper/internal/dbx"

	_ "modernc.org/sqlite"
)

// Repositories bundles every repository backed by the local store.
type Repositories struct {
	Keys     keystore.Repository
	Statuses statuses.Repository
	DB       *sql.DB
}

// RunMigrations brings the schema up to date using the embedded migration
// files.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the sqlite database at dsn, migrates it, and returns the
// repositories. The caller owns Repositories.DB and should close it on
// shutdown.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	return &Repositories{
		Keys:     keystore.NewSQLiteRepository(db),
		Statuses: statuses.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}

// RestoreSnapshot applies the local writes of a restore in one transaction:
// the user's medication-list record (skipped when list is nil) and every
// given status day bucket. A failure anywhere rolls the whole apply back, so
// a half-restored store is impossible.
func (r *Repositories) RestoreSnapshot(ctx context.Context, userID, listKey string, list []byte, buckets map[string][]models.MedicationStatus) error {
	return dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if list != nil {
			keys := keystore.NewSQLiteRepository(tx)
			if err := keys.Set(ctx, keystore.NamespaceMedications, listKey, list); err != nil {
				return err
			}
		}
		for date, bucket := range buckets {
			if err := statuses.ReplaceDayTx(ctx, tx, userID, date, bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
