package models

import "time"

// Medication is one entry in a user's medication list.
// Name is unique per user, case-insensitively.
type Medication struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	TimeOfDay string    `json:"timeOfDay"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
}

// MedicationStatus records whether a medication was taken on one local
// calendar day (YYYY-MM-DD). At most one record exists per
// (user, medication, date); updates overwrite in place.
type MedicationStatus struct {
	MedicationID string     `json:"medicationId"`
	Date         string     `json:"date"`
	IsTaken      bool       `json:"isTaken"`
	TakenAt      *time.Time `json:"takenAt,omitempty"`
}
