package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

// UnilavRepository manages persistence for unilav employment events.
type UnilavRepository struct {
	db *sqlx.DB
}

// NewUnilavRepository constructs a UnilavRepository.
func NewUnilavRepository(db *sqlx.DB) *UnilavRepository {
	return &UnilavRepository{db: db}
}

// ListByWorker returns a worker's events ordered by start date.
func (r *UnilavRepository) ListByWorker(ctx context.Context, workerID string) ([]models.UnilavEvent, error) {
	const query = `SELECT id, worker_id, kind, start_date, end_date, site_id, contract_type, level, schedule, created_at, updated_at
        FROM unilav_events WHERE worker_id = $1 ORDER BY start_date, created_at, id`
	var events []models.UnilavEvent
	if err := r.db.SelectContext(ctx, &events, query, workerID); err != nil {
		return nil, fmt.Errorf("list unilav events: %w", err)
	}
	return events, nil
}

// ListAll returns every event ordered by worker and start date.
func (r *UnilavRepository) ListAll(ctx context.Context) ([]models.UnilavEvent, error) {
	const query = `SELECT id, worker_id, kind, start_date, end_date, site_id, contract_type, level, schedule, created_at, updated_at
        FROM unilav_events ORDER BY worker_id, start_date, created_at, id`
	var events []models.UnilavEvent
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list all unilav events: %w", err)
	}
	return events, nil
}

// FindByID fetches an event by ID.
func (r *UnilavRepository) FindByID(ctx context.Context, id string) (*models.UnilavEvent, error) {
	const query = `SELECT id, worker_id, kind, start_date, end_date, site_id, contract_type, level, schedule, created_at, updated_at
        FROM unilav_events WHERE id = $1`
	var event models.UnilavEvent
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event record.
func (r *UnilavRepository) Create(ctx context.Context, event *models.UnilavEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	const query = `INSERT INTO unilav_events (id, worker_id, kind, start_date, end_date, site_id, contract_type, level, schedule, created_at, updated_at)
        VALUES (:id, :worker_id, :kind, :start_date, :end_date, :site_id, :contract_type, :level, :schedule, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create unilav event: %w", err)
	}
	return nil
}

// Update modifies an existing event.
func (r *UnilavRepository) Update(ctx context.Context, event *models.UnilavEvent) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE unilav_events SET kind = :kind, start_date = :start_date, end_date = :end_date, site_id = :site_id, contract_type = :contract_type, level = :level, schedule = :schedule, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update unilav event: %w", err)
	}
	return nil
}

// Delete removes an event.
func (r *UnilavRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM unilav_events WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete unilav event: %w", err)
	}
	return nil
}
