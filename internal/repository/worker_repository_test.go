package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestWorkerRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWorkerRepository(db)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "fiscal_code", "role", "phone", "birth_date", "created_at", "updated_at"}).
		AddRow("w1", "Mario", "Rossi", "RSSMRA80A01H501U", "site_worker", nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT w.id, w.first_name, w.last_name, w.fiscal_code, w.role, w.phone, w.birth_date, w.created_at, w.updated_at\n        FROM workers w WHERE 1=1 ORDER BY w.last_name ASC LIMIT 20 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM workers w WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	workers, total, err := repo.List(context.Background(), models.WorkerFilter{})
	require.NoError(t, err)
	assert.Len(t, workers, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepositoryListFiltersByRole(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWorkerRepository(db)

	role := models.RoleForeman
	mock.ExpectQuery("SELECT w.id, w.first_name").
		WithArgs(role).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "fiscal_code", "role", "phone", "birth_date", "created_at", "updated_at"}))
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(role).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, total, err := repo.List(context.Background(), models.WorkerFilter{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWorkerRepository(db)

	mock.ExpectExec("INSERT INTO workers").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	worker := &models.Worker{FirstName: "Mario", LastName: "Rossi", Role: models.RoleSiteWorker}
	err := repo.Create(context.Background(), worker)
	require.NoError(t, err)
	assert.NotEmpty(t, worker.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepositoryExistsByFiscalCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewWorkerRepository(db)

	mock.ExpectQuery("SELECT 1 FROM workers").
		WithArgs("RSSMRA80A01H501U", "w2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	exists, err := repo.ExistsByFiscalCode(context.Background(), "RSSMRA80A01H501U", "w2")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
