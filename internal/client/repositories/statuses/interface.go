// Package statuses stores day-bucketed medication adherence records under a
// composite (user, medication, date) key, replacing the string-concatenated
// bucket keys of earlier releases.
package statuses

import (
	"context"

	"github.com/osetrov/healthkeeper/internal/client/models"
)

// Repository persists MedicationStatus records.
//
// Get returns (nil, nil) when no record exists: an unmarked day is a normal
// state, not an error.
type Repository interface {
	// Upsert writes the status for (userID, st.MedicationID, st.Date),
	// overwriting any existing record.
	Upsert(ctx context.Context, userID string, st models.MedicationStatus) error

	Get(ctx context.Context, userID, medicationID, date string) (*models.MedicationStatus, error)

	// ListByDate returns the full day bucket for (userID, date).
	ListByDate(ctx context.Context, userID, date string) ([]models.MedicationStatus, error)

	// ListByUser returns every record for the user, grouped by date.
	ListByUser(ctx context.Context, userID string) (map[string][]models.MedicationStatus, error)

	// ReplaceDay atomically swaps the whole (userID, date) bucket for the
	// given records. Buckets for other dates are untouched.
	ReplaceDay(ctx context.Context, userID, date string, sts []models.MedicationStatus) error

	// DeleteByUser removes every record for the user.
	DeleteByUser(ctx context.Context, userID string) error
}
