package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/osetrov/healthkeeper/internal/dbx"
)

// SQLiteRepository stores namespaced key→JSON records in the kv table.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE namespace = ? AND key = ?`, namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s/%s]: %w", namespace, key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, namespace, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (namespace, key, value) VALUES (?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value
	`, namespace, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s/%s]: %w", namespace, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, namespace, key string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM kv WHERE namespace = ? AND key = ?`, namespace, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s/%s]: %w", namespace, key, err)
	}
	return nil
}

// ListPrefix returns every record in the namespace whose key starts with
// prefix. Filtering happens in Go rather than with LIKE: keys contain '_',
// which LIKE would treat as a wildcard.
func (r *SQLiteRepository) ListPrefix(ctx context.Context, namespace, prefix string) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE namespace = ?`, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv[%s]: %w", namespace, err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		if strings.HasPrefix(key, prefix) {
			result[key] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) DeletePrefix(ctx context.Context, namespace, prefix string) error {
	matched, err := r.ListPrefix(ctx, namespace, prefix)
	if err != nil {
		return err
	}
	for key := range matched {
		if err := r.Delete(ctx, namespace, key); err != nil {
			return err
		}
	}
	return nil
}
