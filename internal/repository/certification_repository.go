package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

// CertificationRepository manages persistence for certifications and their
// renewal ledger.
type CertificationRepository struct {
	db *sqlx.DB
}

// NewCertificationRepository constructs a CertificationRepository.
func NewCertificationRepository(db *sqlx.DB) *CertificationRepository {
	return &CertificationRepository{db: db}
}

// ListByWorker returns a worker's certifications with history attached.
func (r *CertificationRepository) ListByWorker(ctx context.Context, workerID string) ([]models.CertificationRecord, error) {
	const query = `SELECT id, worker_id, category, name, expiry_date, created_at, updated_at
        FROM certifications WHERE worker_id = $1 ORDER BY name`
	var records []models.CertificationRecord
	if err := r.db.SelectContext(ctx, &records, query, workerID); err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	if err := r.attachHistory(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAll returns every certification with history attached.
func (r *CertificationRepository) ListAll(ctx context.Context) ([]models.CertificationRecord, error) {
	const query = `SELECT id, worker_id, category, name, expiry_date, created_at, updated_at
        FROM certifications ORDER BY worker_id, name`
	var records []models.CertificationRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list all certifications: %w", err)
	}
	if err := r.attachHistory(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID fetches a certification with its ledger.
func (r *CertificationRepository) FindByID(ctx context.Context, id string) (*models.CertificationRecord, error) {
	const query = `SELECT id, worker_id, category, name, expiry_date, created_at, updated_at
        FROM certifications WHERE id = $1`
	var record models.CertificationRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	records := []models.CertificationRecord{record}
	if err := r.attachHistory(ctx, records); err != nil {
		return nil, err
	}
	return &records[0], nil
}

// Create inserts a new certification record.
func (r *CertificationRepository) Create(ctx context.Context, record *models.CertificationRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO certifications (id, worker_id, category, name, expiry_date, created_at, updated_at)
        VALUES (:id, :worker_id, :category, :name, :expiry_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create certification: %w", err)
	}
	return nil
}

// Update modifies an existing certification.
func (r *CertificationRepository) Update(ctx context.Context, record *models.CertificationRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE certifications SET category = :category, name = :name, expiry_date = :expiry_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update certification: %w", err)
	}
	return nil
}

// Delete removes a certification together with its ledger.
func (r *CertificationRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete certification: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM certification_renewals WHERE certification_id = $1`, id); err != nil {
		return fmt.Errorf("delete renewals: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM certifications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete certification: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete certification: %w", err)
	}
	return nil
}

// AppendRenewal stores the ledger entry and the moved expiry date in one
// transaction. The ledger is insert-only: rows are never updated here.
func (r *CertificationRepository) AppendRenewal(ctx context.Context, record *models.CertificationRecord, renewal *models.CertificationRenewal) error {
	if renewal.ID == "" {
		renewal.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if renewal.RecordedAt.IsZero() {
		renewal.RecordedAt = now
	}
	record.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append renewal: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertQuery = `INSERT INTO certification_renewals (id, certification_id, previous_expiry, new_expiry, recorded_at)
        VALUES (:id, :certification_id, :previous_expiry, :new_expiry, :recorded_at)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, renewal); err != nil {
		return fmt.Errorf("insert renewal: %w", err)
	}
	const updateQuery = `UPDATE certifications SET expiry_date = :expiry_date, updated_at = :updated_at WHERE id = :id`
	if _, err := tx.NamedExecContext(ctx, updateQuery, record); err != nil {
		return fmt.Errorf("move expiry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append renewal: %w", err)
	}
	return nil
}

func (r *CertificationRepository) attachHistory(ctx context.Context, records []models.CertificationRecord) error {
	if len(records) == 0 {
		return nil
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	query, args, err := sqlx.In(`SELECT id, certification_id, previous_expiry, new_expiry, recorded_at
        FROM certification_renewals WHERE certification_id IN (?) ORDER BY recorded_at, id`, ids)
	if err != nil {
		return fmt.Errorf("build renewal query: %w", err)
	}
	query = r.db.Rebind(query)
	var renewals []models.CertificationRenewal
	if err := r.db.SelectContext(ctx, &renewals, query, args...); err != nil {
		return fmt.Errorf("list renewals: %w", err)
	}
	byRecord := make(map[string][]models.CertificationRenewal, len(records))
	for _, renewal := range renewals {
		byRecord[renewal.CertificationID] = append(byRecord[renewal.CertificationID], renewal)
	}
	for i := range records {
		records[i].History = byRecord[records[i].ID]
	}
	return nil
}
