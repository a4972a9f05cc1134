package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

// PayrollRepository manages persistence for pay records and disbursements.
type PayrollRepository struct {
	db *sqlx.DB
}

// NewPayrollRepository constructs a PayrollRepository.
func NewPayrollRepository(db *sqlx.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

// ListByWorker returns a worker's pay records with disbursements attached.
func (r *PayrollRepository) ListByWorker(ctx context.Context, workerID string) ([]models.PayRecord, error) {
	const query = `SELECT id, worker_id, year, month, type, amount, notes, created_at, updated_at
        FROM pay_records WHERE worker_id = $1 ORDER BY year DESC, month DESC, type`
	var records []models.PayRecord
	if err := r.db.SelectContext(ctx, &records, query, workerID); err != nil {
		return nil, fmt.Errorf("list pay records: %w", err)
	}
	if err := r.attachDisbursements(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListByYear returns every pay record of the year with disbursements attached.
func (r *PayrollRepository) ListByYear(ctx context.Context, year int) ([]models.PayRecord, error) {
	const query = `SELECT id, worker_id, year, month, type, amount, notes, created_at, updated_at
        FROM pay_records WHERE year = $1 ORDER BY worker_id, month, type`
	var records []models.PayRecord
	if err := r.db.SelectContext(ctx, &records, query, year); err != nil {
		return nil, fmt.Errorf("list year pay records: %w", err)
	}
	if err := r.attachDisbursements(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID fetches a pay record with its disbursements.
func (r *PayrollRepository) FindByID(ctx context.Context, id string) (*models.PayRecord, error) {
	const query = `SELECT id, worker_id, year, month, type, amount, notes, created_at, updated_at
        FROM pay_records WHERE id = $1`
	var record models.PayRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	records := []models.PayRecord{record}
	if err := r.attachDisbursements(ctx, records); err != nil {
		return nil, err
	}
	return &records[0], nil
}

// Create inserts a new pay record.
func (r *PayrollRepository) Create(ctx context.Context, record *models.PayRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO pay_records (id, worker_id, year, month, type, amount, notes, created_at, updated_at)
        VALUES (:id, :worker_id, :year, :month, :type, :amount, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create pay record: %w", err)
	}
	return nil
}

// Update modifies an existing pay record.
func (r *PayrollRepository) Update(ctx context.Context, record *models.PayRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE pay_records SET year = :year, month = :month, type = :type, amount = :amount, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update pay record: %w", err)
	}
	return nil
}

// Delete removes a pay record together with its disbursements.
func (r *PayrollRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete pay record: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM disbursements WHERE pay_record_id = $1`, id); err != nil {
		return fmt.Errorf("delete disbursements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pay_records WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete pay record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete pay record: %w", err)
	}
	return nil
}

// AddDisbursement inserts a partial payment against a pay record.
func (r *PayrollRepository) AddDisbursement(ctx context.Context, disbursement *models.Disbursement) error {
	if disbursement.ID == "" {
		disbursement.ID = uuid.NewString()
	}
	if disbursement.CreatedAt.IsZero() {
		disbursement.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO disbursements (id, pay_record_id, amount, date, method, created_at)
        VALUES (:id, :pay_record_id, :amount, :date, :method, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, disbursement); err != nil {
		return fmt.Errorf("create disbursement: %w", err)
	}
	return nil
}

// DeleteDisbursement removes one disbursement of a pay record.
func (r *PayrollRepository) DeleteDisbursement(ctx context.Context, payRecordID, disbursementID string) error {
	const query = `DELETE FROM disbursements WHERE id = $1 AND pay_record_id = $2`
	if _, err := r.db.ExecContext(ctx, query, disbursementID, payRecordID); err != nil {
		return fmt.Errorf("delete disbursement: %w", err)
	}
	return nil
}

func (r *PayrollRepository) attachDisbursements(ctx context.Context, records []models.PayRecord) error {
	if len(records) == 0 {
		return nil
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	query, args, err := sqlx.In(`SELECT id, pay_record_id, amount, date, method, created_at
        FROM disbursements WHERE pay_record_id IN (?) ORDER BY date, created_at`, ids)
	if err != nil {
		return fmt.Errorf("build disbursement query: %w", err)
	}
	query = r.db.Rebind(query)
	var disbursements []models.Disbursement
	if err := r.db.SelectContext(ctx, &disbursements, query, args...); err != nil {
		return fmt.Errorf("list disbursements: %w", err)
	}
	byRecord := make(map[string][]models.Disbursement, len(records))
	for _, d := range disbursements {
		byRecord[d.PayRecordID] = append(byRecord[d.PayRecordID], d)
	}
	for i := range records {
		records[i].Disbursements = byRecord[records[i].ID]
	}
	return nil
}
