package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/osetrov/healthkeeper/internal/client/repositories/keystore"
	"github.com/osetrov/healthkeeper/internal/client/repositories/statuses"
	"github.com/osetrov/healthkeeper/internal/client/store"

	_ "modernc.org/sqlite"
)

var testSessionSecret = []byte("test-session-secret")

// dbSeq gives every environment its own named in-memory database; backup
// tests build two environments side by side and they must not share state.
var dbSeq atomic.Int64

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  namespace TEXT NOT NULL,
  key       TEXT NOT NULL,
  value     TEXT NOT NULL,
  PRIMARY KEY (namespace, key)
);
CREATE TABLE medication_statuses (
  user_id       TEXT NOT NULL,
  medication_id TEXT NOT NULL,
  date          TEXT NOT NULL,
  is_taken      INTEGER NOT NULL DEFAULT 0,
  taken_at      TEXT,
  PRIMARY KEY (user_id, medication_id, date)
);
`)
	require.NoError(t, err)
	return db
}

// env wires real repositories over an in-memory store plus the auth and
// medication services most tests need.
type env struct {
	db       *sql.DB
	keys     keystore.Repository
	statuses statuses.Repository
	repos    *store.Repositories
	auth     *authService
	meds     *medicationService
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	db := setupDB(t)

	repos := &store.Repositories{
		Keys:     keystore.NewSQLiteRepository(db),
		Statuses: statuses.NewSQLiteRepository(db),
		DB:       db,
	}

	auth := NewAuthService(repos.Keys, testSessionSecret, nil).(*authService)
	auth.hashCost = bcrypt.MinCost

	meds := NewMedicationService(auth, repos.Keys, repos.Statuses, nil).(*medicationService)

	return &env{db: db, keys: repos.Keys, statuses: repos.Statuses, repos: repos, auth: auth, meds: meds}
}

// signIn registers and signs in a throwaway account.
func (e *env) signIn(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()
	_, err := e.auth.SignUp(ctx, email, "password1")
	require.NoError(t, err)
	_, err = e.auth.SignIn(ctx, email, "password1")
	require.NoError(t, err)
}

func fixedNow(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
