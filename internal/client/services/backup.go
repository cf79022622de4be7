package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/osetrov/healthkeeper/internal/client/blob"
	"github.com/osetrov/healthkeeper/internal/client/models"
	"github.com/osetrov/healthkeeper/internal/client/repositories/keystore"
	"github.com/osetrov/healthkeeper/internal/client/repositories/statuses"
	"github.com/osetrov/healthkeeper/internal/common"
	"github.com/osetrov/healthkeeper/internal/cryptox"
	"github.com/osetrov/healthkeeper/internal/logging"
)

// statusBucketKeyPrefix builds the legacy snapshot key for a day bucket:
// medication_status_<email>_<YYYY-MM-DD>. Snapshots keep this shape so
// documents written by earlier releases still restore.
const statusBucketKeyPrefix = "medication_status_"

// BackupService ships the signed-in user's whole dataset to a cloud blob and
// back. Uploads serialize and encrypt the full snapshot; restores validate
// and stage everything first, then apply in one transaction, so a bad
// document or a failed write never half-applies.
type BackupService interface {
	BackupToCloud(ctx context.Context) models.BackupResult
	RestoreFromCloud(ctx context.Context) models.BackupResult
	CheckBackupExists(ctx context.Context) bool
	GetBackupInfo(ctx context.Context) models.BackupInfo
}

// SnapshotApplier commits the local writes of a restore atomically: the
// medication-list record (nil list means leave it alone) plus every staged
// day bucket land together or not at all.
type SnapshotApplier interface {
	RestoreSnapshot(ctx context.Context, userID, listKey string, list []byte, buckets map[string][]models.MedicationStatus) error
}

type backupService struct {
	auth     AuthService
	meds     MedicationService
	keys     keystore.Repository
	statuses statuses.Repository
	applier  SnapshotApplier
	store    blob.Store

	objectKey string
	// aesKey is derived once from a static passphrase. One key for every
	// install and every user: a known weakness carried over from the
	// original design, kept here so old backups stay restorable.
	aesKey []byte

	log   logging.Logger
	nowFn func() time.Time
}

// NewBackupService constructs a BackupService. objectKey is the single
// well-known remote path; passphrase feeds the static encryption key.
func NewBackupService(
	auth AuthService,
	meds MedicationService,
	keys keystore.Repository,
	sts statuses.Repository,
	applier SnapshotApplier,
	store blob.Store,
	objectKey string,
	passphrase string,
	log logging.Logger,
) BackupService {
	if log == nil {
		log = logging.NewNop()
	}
	return &backupService{
		auth:      auth,
		meds:      meds,
		keys:      keys,
		statuses:  sts,
		applier:   applier,
		store:     store,
		objectKey: objectKey,
		aesKey:    cryptox.DeriveKey(passphrase),
		log:       log,
		nowFn:     time.Now,
	}
}

func statusBucketKey(email, date string) string {
	return statusBucketKeyPrefix + email + "_" + date
}

// dateFromBucketKey recovers the YYYY-MM-DD suffix of a snapshot bucket key.
func dateFromBucketKey(key string) (string, bool) {
	i := strings.LastIndex(key, "_")
	if i < 0 {
		return "", false
	}
	date := key[i+1:]
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", false
	}
	return date, true
}

// gatherUserData collects everything the snapshot carries: the medication
// list, every day bucket, and the raw session record as an opaque profile
// blob. HealthReadings is reserved and stays empty.
func (b *backupService) gatherUserData(ctx context.Context, email string) (*models.BackupUserData, error) {
	medications := b.meds.GetMedications(ctx)

	byDate, err := b.statuses.ListByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("gathering statuses: %w", err)
	}
	buckets := make(map[string][]models.MedicationStatus, len(byDate))
	for date, bucket := range byDate {
		buckets[statusBucketKey(email, date)] = bucket
	}

	profile, err := b.keys.Get(ctx, keystore.NamespaceAuth, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("gathering profile: %w", err)
	}
	var userProfile json.RawMessage
	if profile != nil {
		// The session record is a signed token, not a JSON document; wrap it
		// as a JSON string so the snapshot stays a valid document.
		userProfile, err = json.Marshal(string(profile))
		if err != nil {
			return nil, fmt.Errorf("encoding profile: %w", err)
		}
	}

	return &models.BackupUserData{
		Medications:        medications,
		MedicationStatuses: buckets,
		UserProfile:        userProfile,
		HealthReadings:     []json.RawMessage{},
	}, nil
}

func (b *backupService) BackupToCloud(ctx context.Context) models.BackupResult {
	user := b.auth.CurrentUser(ctx)
	if user == nil {
		return models.BackupResult{Message: "User not authenticated"}
	}

	userData, err := b.gatherUserData(ctx, user.Email)
	if err != nil {
		b.log.Error(ctx, "backup failed", "stage", "gather", "err", err)
		return models.BackupResult{Message: "Failed to gather user data"}
	}

	snapshot := models.BackupSnapshot{
		Version:   models.SnapshotVersion,
		Timestamp: b.nowFn().UTC().Format(time.RFC3339),
		UserID:    user.Email,
		UserData:  *userData,
	}

	plaintext, err := json.Marshal(snapshot)
	if err != nil {
		b.log.Error(ctx, "backup failed", "stage", "serialize", "err", err)
		return models.BackupResult{Message: "Failed to serialize backup data"}
	}

	ciphertext, err := cryptox.Encrypt(plaintext, b.aesKey)
	if err != nil {
		b.log.Error(ctx, "backup failed", "stage", "encrypt", "err", err)
		return models.BackupResult{Message: "Failed to encrypt backup data"}
	}

	if err := b.store.Write(ctx, b.objectKey, []byte(ciphertext)); err != nil {
		b.log.Error(ctx, "backup failed", "stage", "upload", "err", err)
		return models.BackupResult{Message: "Failed to save backup to cloud storage"}
	}

	sizeKB := int(math.Round(float64(len(ciphertext)) / 1024))
	b.log.Info(ctx, "backup uploaded", "user", user.Email, "size_kb", sizeKB)

	return models.BackupResult{
		Success: true,
		Message: "Data backed up successfully",
		SizeKB:  sizeKB,
	}
}

func (b *backupService) RestoreFromCloud(ctx context.Context) models.BackupResult {
	user := b.auth.CurrentUser(ctx)
	if user == nil {
		return models.BackupResult{Message: "User not authenticated"}
	}

	ciphertext, err := b.store.Read(ctx, b.objectKey)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.BackupResult{Message: "No backup found in cloud storage"}
		}
		b.log.Error(ctx, "restore failed", "stage", "download", "err", err)
		return models.BackupResult{Message: "Failed to read backup from cloud storage"}
	}

	plaintext, err := cryptox.Decrypt(string(ciphertext), b.aesKey)
	if err != nil {
		b.log.Error(ctx, "restore failed", "stage", "decrypt",
			"err", fmt.Errorf("%w: %w", common.ErrDataIntegrity, err))
		return models.BackupResult{Message: "Failed to decrypt backup data"}
	}

	var snapshot models.BackupSnapshot
	if err := json.Unmarshal(plaintext, &snapshot); err != nil {
		b.log.Error(ctx, "restore failed", "stage", "parse",
			"err", fmt.Errorf("%w: %w", common.ErrDataIntegrity, err))
		return models.BackupResult{Message: "Backup data is corrupted"}
	}

	// userId and the userData key itself must be present; an empty userData
	// object is a valid snapshot that simply restores nothing.
	var shape struct {
		UserID   string          `json:"userId"`
		UserData json.RawMessage `json:"userData"`
	}
	_ = json.Unmarshal(plaintext, &shape)
	if shape.UserID == "" || len(shape.UserData) == 0 || string(shape.UserData) == "null" {
		return models.BackupResult{Message: "Invalid backup data format"}
	}

	if snapshot.UserID != user.Email {
		// Not fatal: the user may have changed email since the backup.
		b.log.Warn(ctx, "backup belongs to a different user",
			"backup_user", snapshot.UserID, "current_user", user.Email)
	}

	// Stage everything before touching the store.
	var list []byte
	if snapshot.UserData.Medications != nil {
		list, err = json.Marshal(snapshot.UserData.Medications)
		if err != nil {
			b.log.Error(ctx, "restore failed", "stage", "stage-medications", "err", err)
			return models.BackupResult{Message: "Failed to restore backup data"}
		}
	}

	// Only buckets present in the snapshot are replaced; every other local
	// day bucket is left untouched.
	buckets := make(map[string][]models.MedicationStatus, len(snapshot.UserData.MedicationStatuses))
	for key, bucket := range snapshot.UserData.MedicationStatuses {
		date, ok := dateFromBucketKey(key)
		if !ok {
			b.log.Warn(ctx, "skipping unrecognized status key in backup", "key", key)
			continue
		}
		buckets[date] = bucket
	}

	// One transaction for the whole apply: a failure here leaves the local
	// store exactly as it was.
	if err := b.applier.RestoreSnapshot(ctx, user.Email, medicationsKey(user.Email), list, buckets); err != nil {
		b.log.Error(ctx, "restore failed", "stage", "apply", "err", err)
		return models.BackupResult{Message: "Failed to restore backup data"}
	}

	// The user profile is deliberately not restored: overwriting the session
	// record would corrupt the active login.

	b.log.Info(ctx, "restore completed", "user", user.Email, "backup_ts", snapshot.Timestamp)
	return models.BackupResult{
		Success: true,
		Message: fmt.Sprintf("Data restored successfully from backup created on %s",
			humanDate(snapshot.Timestamp)),
	}
}

func (b *backupService) CheckBackupExists(ctx context.Context) bool {
	// Best effort: a transport failure reads the same as "no backup".
	_, err := b.store.Stat(ctx, b.objectKey)
	return err == nil
}

func (b *backupService) GetBackupInfo(ctx context.Context) models.BackupInfo {
	info, err := b.store.Stat(ctx, b.objectKey)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			b.log.Warn(ctx, "backup probe failed", "err", err)
		}
		return models.BackupInfo{}
	}

	result := models.BackupInfo{Exists: true, SizeBytes: info.SizeBytes}
	if !info.LastModified.IsZero() {
		result.LastModified = info.LastModified.UTC().Format(time.RFC3339)
	}
	return result
}

// humanDate renders an ISO-8601 timestamp as a short human-readable date,
// falling back to the raw string when it does not parse.
func humanDate(timestamp string) string {
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return ts.Format("Jan 2, 2006")
}
