package models

import "encoding/json"

// SnapshotVersion tags the backup document schema.
const SnapshotVersion = "1.0"

// BackupSnapshot is the full exported document of one user's data. It exists
// only in transit: built during backup, consumed during restore, never stored
// locally.
type BackupSnapshot struct {
	Version   string         `json:"version"`
	Timestamp string         `json:"timestamp"`
	UserID    string         `json:"userId"`
	UserData  BackupUserData `json:"userData"`
}

// BackupUserData carries the snapshot payload. MedicationStatuses maps the
// legacy bucket key (user + date) to that day's full status list, keeping
// snapshots compatible with documents produced by earlier releases.
// UserProfile is opaque: it is moved, never interpreted. HealthReadings is
// reserved and always empty today.
type BackupUserData struct {
	Medications        []Medication                  `json:"medications"`
	MedicationStatuses map[string][]MedicationStatus `json:"medicationStatuses"`
	UserProfile        json.RawMessage               `json:"userProfile"`
	HealthReadings     []json.RawMessage             `json:"healthReadings"`
}

// BackupResult reports the outcome of a backup or restore operation.
type BackupResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SizeKB  int    `json:"sizeInKB,omitempty"`
}

// BackupInfo is a best-effort probe of the remote backup object.
type BackupInfo struct {
	Exists       bool   `json:"exists"`
	LastModified string `json:"lastModified,omitempty"`
	SizeBytes    int64  `json:"sizeBytes,omitempty"`
}
