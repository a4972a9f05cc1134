package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
)

type mockCertRepo struct {
	records  map[string]*models.CertificationRecord
	appended []models.CertificationRenewal
}

func (m *mockCertRepo) ListByWorker(_ context.Context, workerID string) ([]models.CertificationRecord, error) {
	var out []models.CertificationRecord
	for _, rec := range m.records {
		if rec.WorkerID == workerID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *mockCertRepo) ListAll(_ context.Context) ([]models.CertificationRecord, error) {
	var out []models.CertificationRecord
	for _, rec := range m.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (m *mockCertRepo) FindByID(_ context.Context, id string) (*models.CertificationRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, assert.AnError
	}
	clone := *rec
	return &clone, nil
}

func (m *mockCertRepo) Create(_ context.Context, record *models.CertificationRecord) error {
	record.ID = "cert-new"
	if m.records == nil {
		m.records = map[string]*models.CertificationRecord{}
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockCertRepo) Update(_ context.Context, record *models.CertificationRecord) error {
	m.records[record.ID] = record
	return nil
}

func (m *mockCertRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockCertRepo) AppendRenewal(_ context.Context, record *models.CertificationRecord, renewal *models.CertificationRenewal) error {
	m.appended = append(m.appended, *renewal)
	stored := *record
	stored.History = append(stored.History, *renewal)
	m.records[record.ID] = &stored
	return nil
}

type stubWorkerFinder struct {
	worker *models.Worker
}

func (s *stubWorkerFinder) FindByID(_ context.Context, id string) (*models.Worker, error) {
	if s.worker != nil && s.worker.ID == id {
		return s.worker, nil
	}
	return nil, assert.AnError
}

func newCertService(repo *mockCertRepo) *CertificationService {
	workers := &stubWorkerFinder{worker: &models.Worker{ID: "w1", Role: models.RoleSiteWorker}}
	return NewCertificationService(repo, workers, nil, zap.NewNop())
}

func TestAddRenewalAppendsAndMovesExpiry(t *testing.T) {
	oldExpiry := date(2025, time.March, 1)
	repo := &mockCertRepo{records: map[string]*models.CertificationRecord{
		"c1": {ID: "c1", WorkerID: "w1", Category: models.CertificationCourse, Name: "Ponteggi", ExpiryDate: &oldExpiry},
	}}
	svc := newCertService(repo)

	got, err := svc.AddRenewal(context.Background(), "w1", "c1", AddRenewalRequest{
		NewExpiry: date(2027, time.March, 1),
	})
	require.NoError(t, err)

	require.NotNil(t, got.ExpiryDate)
	assert.Equal(t, date(2027, time.March, 1), *got.ExpiryDate)
	require.Len(t, got.History, 1)
	require.NotNil(t, got.History[0].PreviousExpiry)
	assert.Equal(t, oldExpiry, *got.History[0].PreviousExpiry)
	assert.Equal(t, date(2027, time.March, 1), got.History[0].NewExpiry)
	require.Len(t, repo.appended, 1)
}

func TestAddRenewalFirstEntryHasNilPrevious(t *testing.T) {
	repo := &mockCertRepo{records: map[string]*models.CertificationRecord{
		"c1": {ID: "c1", WorkerID: "w1", Category: models.CertificationMedicalVisit, Name: "Visita periodica"},
	}}
	svc := newCertService(repo)

	got, err := svc.AddRenewal(context.Background(), "w1", "c1", AddRenewalRequest{
		NewExpiry: date(2026, time.January, 15),
	})
	require.NoError(t, err)
	require.Len(t, got.History, 1)
	assert.Nil(t, got.History[0].PreviousExpiry)
}

func TestAddRenewalRejectsOutOfSyncHistory(t *testing.T) {
	// Current expiry drifted away from the newest ledger entry: refuse to
	// extend the ledger until the record is repaired.
	staleExpiry := date(2025, time.January, 1)
	repo := &mockCertRepo{records: map[string]*models.CertificationRecord{
		"c1": {
			ID: "c1", WorkerID: "w1", Category: models.CertificationCourse, Name: "Primo soccorso",
			ExpiryDate: &staleExpiry,
			History: []models.CertificationRenewal{
				{CertificationID: "c1", NewExpiry: date(2025, time.June, 1)},
			},
		},
	}}
	svc := newCertService(repo)

	_, err := svc.AddRenewal(context.Background(), "w1", "c1", AddRenewalRequest{
		NewExpiry: date(2027, time.June, 1),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrLedgerConflict.Code, appErr.Code)
	assert.Empty(t, repo.appended)
}

func TestExpiringFiltersValidAndUnknown(t *testing.T) {
	today := date(2025, time.June, 10)
	soon := today.AddDate(0, 0, 10)
	past := today.AddDate(0, 0, -5)
	far := today.AddDate(1, 0, 0)
	repo := &mockCertRepo{records: map[string]*models.CertificationRecord{
		"c1": {ID: "c1", WorkerID: "w1", Name: "a", ExpiryDate: &soon},
		"c2": {ID: "c2", WorkerID: "w1", Name: "b", ExpiryDate: &past},
		"c3": {ID: "c3", WorkerID: "w1", Name: "c", ExpiryDate: &far},
		"c4": {ID: "c4", WorkerID: "w1", Name: "d"},
	}}
	svc := newCertService(repo)

	alerts, err := svc.Expiring(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	for _, alert := range alerts {
		assert.Contains(t, []models.ExpiryStatus{models.ExpiryExpired, models.ExpiryUpcoming}, alert.Expiry.Status)
	}
}
