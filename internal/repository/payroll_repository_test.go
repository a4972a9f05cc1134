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

func TestPayrollRepositoryListByWorkerAttachesDisbursements(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPayrollRepository(db)

	mock.ExpectQuery("SELECT id, worker_id, year, month, type, amount").
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "worker_id", "year", "month", "type", "amount", "notes", "created_at", "updated_at"}).
			AddRow("p1", "w1", 2025, 6, "salary", "1500.00", nil, time.Now(), time.Now()))
	mock.ExpectQuery("SELECT id, pay_record_id, amount, date, method").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pay_record_id", "amount", "date", "method", "created_at"}).
			AddRow("d1", "p1", "1000.00", time.Now(), nil, time.Now()).
			AddRow("d2", "p1", "200.00", time.Now(), nil, time.Now()))

	records, err := repo.ListByWorker(context.Background(), "w1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Disbursements, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepositoryDeleteRemovesDisbursementsToo(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPayrollRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM disbursements").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM pay_records").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepositoryAddDisbursement(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPayrollRepository(db)

	mock.ExpectExec("INSERT INTO disbursements").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	disbursement := &models.Disbursement{PayRecordID: "p1", Date: time.Now()}
	err := repo.AddDisbursement(context.Background(), disbursement)
	require.NoError(t, err)
	assert.NotEmpty(t, disbursement.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
