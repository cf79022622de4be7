package statuses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/osetrov/healthkeeper/internal/client/models"
	"github.com/osetrov/healthkeeper/internal/dbx"
)

// timeLayout is how taken_at instants are stored in sqlite.
const timeLayout = time.RFC3339Nano

// SQLiteRepository persists statuses in the medication_statuses table.
// It takes *sql.DB (not dbx.DBTX) because ReplaceDay needs its own
// transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, userID string, st models.MedicationStatus) error {
	return upsertOne(ctx, r.db, userID, st)
}

func upsertOne(ctx context.Context, db dbx.DBTX, userID string, st models.MedicationStatus) error {
	var takenAt any
	if st.TakenAt != nil {
		takenAt = st.TakenAt.Format(timeLayout)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO medication_statuses (user_id, medication_id, date, is_taken, taken_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, medication_id, date)
		DO UPDATE SET is_taken = excluded.is_taken, taken_at = excluded.taken_at
	`, userID, st.MedicationID, st.Date, st.IsTaken, takenAt)
	if err != nil {
		return fmt.Errorf("failed to upsert status[%s/%s/%s]: %w", userID, st.MedicationID, st.Date, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, userID, medicationID, date string) (*models.MedicationStatus, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT medication_id, date, is_taken, taken_at
		FROM medication_statuses
		WHERE user_id = ? AND medication_id = ? AND date = ?
	`, userID, medicationID, date)

	st, err := scanStatus(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status[%s/%s/%s]: %w", userID, medicationID, date, err)
	}
	return st, nil
}

func (r *SQLiteRepository) ListByDate(ctx context.Context, userID, date string) ([]models.MedicationStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT medication_id, date, is_taken, taken_at
		FROM medication_statuses
		WHERE user_id = ? AND date = ?
		ORDER BY medication_id
	`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses[%s/%s]: %w", userID, date, err)
	}
	defer rows.Close()

	return collectStatuses(rows)
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) (map[string][]models.MedicationStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT medication_id, date, is_taken, taken_at
		FROM medication_statuses
		WHERE user_id = ?
		ORDER BY date, medication_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses[%s]: %w", userID, err)
	}
	defer rows.Close()

	all, err := collectStatuses(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.MedicationStatus)
	for _, st := range all {
		result[st.Date] = append(result[st.Date], st)
	}
	return result, nil
}

func (r *SQLiteRepository) ReplaceDay(ctx context.Context, userID, date string, sts []models.MedicationStatus) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return ReplaceDayTx(ctx, tx, userID, date, sts)
	})
}

// ReplaceDayTx swaps the whole (userID, date) bucket on an existing handle.
// Callers composing several bucket swaps into one transaction use this
// directly; ReplaceDay wraps it for the single-bucket case.
func ReplaceDayTx(ctx context.Context, tx dbx.DBTX, userID, date string, sts []models.MedicationStatus) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM medication_statuses WHERE user_id = ? AND date = ?`, userID, date); err != nil {
		return fmt.Errorf("failed to clear bucket[%s/%s]: %w", userID, date, err)
	}
	for _, st := range sts {
		st.Date = date
		if err := upsertOne(ctx, tx, userID, st); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM medication_statuses WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete statuses[%s]: %w", userID, err)
	}
	return nil
}

// --- row helpers ---

func scanStatus(scan func(dest ...any) error) (*models.MedicationStatus, error) {
	var st models.MedicationStatus
	var takenAt sql.NullString
	if err := scan(&st.MedicationID, &st.Date, &st.IsTaken, &takenAt); err != nil {
		return nil, err
	}
	if takenAt.Valid {
		ts, err := time.Parse(timeLayout, takenAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse taken_at: %w", err)
		}
		st.TakenAt = &ts
	}
	return &st, nil
}

func collectStatuses(rows *sql.Rows) ([]models.MedicationStatus, error) {
	var result []models.MedicationStatus
	for rows.Next() {
		st, err := scanStatus(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		result = append(result, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status rows: %w", err)
	}
	return result, nil
}
