package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osetrov/healthkeeper/internal/client/models"
	"github.com/osetrov/healthkeeper/internal/client/repositories/keystore"
	"github.com/osetrov/healthkeeper/internal/client/repositories/statuses"
	"github.com/osetrov/healthkeeper/internal/common"
	"github.com/osetrov/healthkeeper/internal/logging"
)

// medicationsKeyPrefix + normalized email keys the user's medication list
// (one JSON array per user).
const medicationsKeyPrefix = "user_medications_"

// dateLayout is the local calendar day format used for day buckets.
const dateLayout = "2006-01-02"

// MedicationService manages the signed-in user's medication list and the
// day-bucketed adherence records.
//
// Contract:
//   - SaveMedication: validate, reject case-insensitive duplicate names,
//     persist, return the new record.
//   - GetMedications: newest first; empty without a session or data. Never
//     errors.
//   - UpdateMedicationStatus: upsert today's record for the medication;
//     idempotent.
//   - IsMedicationTakenToday: absence reads as false, not as an error.
//   - DeleteMedication: remove from the list; historical statuses are kept
//     on purpose (adherence history outlives the list entry).
//   - ClearAllMedicationData: drop the user's list and every status record.
type MedicationService interface {
	SaveMedication(ctx context.Context, name, dosage, timeOfDay string) (*models.Medication, error)
	GetMedications(ctx context.Context) []models.Medication
	UpdateMedicationStatus(ctx context.Context, medicationID string, isTaken bool) error
	TodaysStatuses(ctx context.Context) []models.MedicationStatus
	IsMedicationTakenToday(ctx context.Context, medicationID string) bool
	DeleteMedication(ctx context.Context, medicationID string) error
	ClearAllMedicationData(ctx context.Context) error
}

type medicationService struct {
	auth     AuthService
	keys     keystore.Repository
	statuses statuses.Repository
	log      logging.Logger

	nowFn func() time.Time
}

// NewMedicationService constructs a MedicationService scoped by the active
// session of auth.
func NewMedicationService(auth AuthService, keys keystore.Repository, sts statuses.Repository, log logging.Logger) MedicationService {
	if log == nil {
		log = logging.NewNop()
	}
	return &medicationService{
		auth:     auth,
		keys:     keys,
		statuses: sts,
		log:      log,
		nowFn:    time.Now,
	}
}

// today resolves the device-local calendar date.
func (m *medicationService) today() string {
	return m.nowFn().Format(dateLayout)
}

func medicationsKey(email string) string {
	return medicationsKeyPrefix + email
}

// loadList reads and decodes the user's medication list; absent key means an
// empty list.
func (m *medicationService) loadList(ctx context.Context, email string) ([]models.Medication, error) {
	data, err := m.keys.Get(ctx, keystore.NamespaceMedications, medicationsKey(email))
	if err != nil {
		return nil, fmt.Errorf("reading medication list: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var list []models.Medication
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding medication list: %w", err)
	}
	return list, nil
}

func (m *medicationService) saveList(ctx context.Context, email string, list []models.Medication) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding medication list: %w", err)
	}
	if err := m.keys.Set(ctx, keystore.NamespaceMedications, medicationsKey(email), data); err != nil {
		return fmt.Errorf("saving medication list: %w", err)
	}
	return nil
}

func (m *medicationService) SaveMedication(ctx context.Context, name, dosage, timeOfDay string) (*models.Medication, error) {
	user := m.auth.CurrentUser(ctx)
	if user == nil {
		return nil, common.ErrNotAuthenticated
	}

	name = strings.TrimSpace(name)
	dosage = strings.TrimSpace(dosage)
	timeOfDay = strings.TrimSpace(timeOfDay)

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: medication name is required", common.ErrValidation)
	case dosage == "":
		return nil, fmt.Errorf("%w: dosage is required", common.ErrValidation)
	case timeOfDay == "":
		return nil, fmt.Errorf("%w: time of day is required", common.ErrValidation)
	}

	list, err := m.loadList(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	for _, med := range list {
		if strings.EqualFold(med.Name, name) {
			return nil, fmt.Errorf("%w: this medication is already in your list", common.ErrConflict)
		}
	}

	med := models.Medication{
		ID:        uuid.NewString(),
		Name:      name,
		Dosage:    dosage,
		TimeOfDay: timeOfDay,
		CreatedAt: m.nowFn().UTC(),
		UserID:    user.Email,
	}

	if err := m.saveList(ctx, user.Email, append(list, med)); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "medication saved", "user", user.Email, "name", med.Name)
	return &med, nil
}

func (m *medicationService) GetMedications(ctx context.Context) []models.Medication {
	user := m.auth.CurrentUser(ctx)
	if user == nil {
		return nil
	}

	list, err := m.loadList(ctx, user.Email)
	if err != nil {
		m.log.Error(ctx, "failed to load medications", "user", user.Email, "err", err)
		return nil
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func (m *medicationService) UpdateMedicationStatus(ctx context.Context, medicationID string, isTaken bool) error {
	user := m.auth.CurrentUser(ctx)
	if user == nil {
		return common.ErrNotAuthenticated
	}

	st := models.MedicationStatus{
		MedicationID: medicationID,
		Date:         m.today(),
		IsTaken:      isTaken,
	}
	if isTaken {
		now := m.nowFn().UTC()
		st.TakenAt = &now
	}

	if err := m.statuses.Upsert(ctx, user.Email, st); err != nil {
		return fmt.Errorf("updating medication status: %w", err)
	}
	return nil
}

func (m *medicationService) TodaysStatuses(ctx context.Context) []models.MedicationStatus {
	user := m.auth.CurrentUser(ctx)
	if user == nil {
		return nil
	}

	bucket, err := m.statuses.ListByDate(ctx, user.Email, m.today())
	if err != nil {
		m.log.Error(ctx, "failed to load today's statuses", "user", user.Email, "err", err)
		return nil
	}
	return bucket
}

func (m *medicationService) IsMedicationTakenToday(ctx context.Context, medicationID string) bool {
	user := m.auth.CurrentUser(ctx)
	if user == nil {
		return false
	}

	st, err := m.statuses.Get(ctx, user.Email, medicationID, m.today())
	if err != nil {
		m.log.Error(ctx, "failed to read status", "user", user.Email, "err", err)
		return false
	}
	if st == nil {
		return false
	}
	return st.IsTaken
}

func (m *medicationService) DeleteMedication(ctx context.Context, medicationID string) error {
	user := m.auth.CurrentUser(ctx)
	if user == nil {
		return common.ErrNotAuthenticated
	}

	list, err := m.loadList(ctx, user.Email)
	if err != nil {
		return err
	}

	kept := list[:0:0]
	for _, med := range list {
		if med.ID != medicationID {
			kept = append(kept, med)
		}
	}
	if len(kept) == len(list) {
		return fmt.Errorf("%w: medication", common.ErrNotFound)
	}

	// Status records for the deleted id stay: adherence history is kept even
	// after the medication leaves the list.
	if err := m.saveList(ctx, user.Email, kept); err != nil {
		return err
	}

	m.log.Info(ctx, "medication deleted", "user", user.Email, "id", medicationID)
	return nil
}

func (m *medicationService) ClearAllMedicationData(ctx context.Context) error {
	user := m.auth.CurrentUser(ctx)
	if user == nil {
		return common.ErrNotAuthenticated
	}

	if err := m.keys.Delete(ctx, keystore.NamespaceMedications, medicationsKey(user.Email)); err != nil {
		return fmt.Errorf("deleting medication list: %w", err)
	}
	if err := m.statuses.DeleteByUser(ctx, user.Email); err != nil {
		return fmt.Errorf("deleting statuses: %w", err)
	}
	return nil
}
