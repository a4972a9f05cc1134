package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

func TestCertificationRepositoryFindByIDAttachesHistory(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCertificationRepository(db)

	expiry := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, worker_id, category, name, expiry_date").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "worker_id", "category", "name", "expiry_date", "created_at", "updated_at"}).
			AddRow("c1", "w1", "course", "Ponteggi", expiry, time.Now(), time.Now()))
	mock.ExpectQuery("SELECT id, certification_id, previous_expiry, new_expiry, recorded_at").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "certification_id", "previous_expiry", "new_expiry", "recorded_at"}).
			AddRow("r1", "c1", nil, expiry, time.Now()))

	record, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Ponteggi", record.Name)
	require.Len(t, record.History, 1)
	assert.Nil(t, record.History[0].PreviousExpiry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificationRepositoryAppendRenewalIsTransactional(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCertificationRepository(db)

	newExpiry := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
	record := &models.CertificationRecord{ID: "c1", WorkerID: "w1", Category: models.CertificationCourse, Name: "Ponteggi", ExpiryDate: &newExpiry}
	renewal := &models.CertificationRenewal{CertificationID: "c1", NewExpiry: newExpiry}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO certification_renewals").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE certifications SET expiry_date").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.AppendRenewal(context.Background(), record, renewal)
	require.NoError(t, err)
	assert.NotEmpty(t, renewal.ID)
	assert.False(t, renewal.RecordedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificationRepositoryAppendRenewalRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCertificationRepository(db)

	newExpiry := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
	record := &models.CertificationRecord{ID: "c1", ExpiryDate: &newExpiry}
	renewal := &models.CertificationRenewal{CertificationID: "c1", NewExpiry: newExpiry}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO certification_renewals").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.AppendRenewal(context.Background(), record, renewal)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
