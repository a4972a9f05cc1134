package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

// AttendanceRepository manages persistence for attendance entries.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListByWorkerMonth returns a worker's entries within the month.
func (r *AttendanceRepository) ListByWorkerMonth(ctx context.Context, workerID string, year int, month int) ([]models.AttendanceRecord, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	const query = `SELECT id, worker_id, date, type, hours, rain_hours, permit_hours, site_id, notes, created_at, updated_at
        FROM attendance_records WHERE worker_id = $1 AND date >= $2 AND date < $3 ORDER BY date`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, workerID, from, to); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListForMonth returns every worker's entries within the month.
func (r *AttendanceRepository) ListForMonth(ctx context.Context, year int, month time.Month) ([]models.AttendanceRecord, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	const query = `SELECT id, worker_id, date, type, hours, rain_hours, permit_hours, site_id, notes, created_at, updated_at
        FROM attendance_records WHERE date >= $1 AND date < $2 ORDER BY worker_id, date`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, from, to); err != nil {
		return nil, fmt.Errorf("list month attendance: %w", err)
	}
	return records, nil
}

// FindByID fetches an entry by ID.
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	const query = `SELECT id, worker_id, date, type, hours, rain_hours, permit_hours, site_id, notes, created_at, updated_at
        FROM attendance_records WHERE id = $1`
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByWorkerDate fetches the entry for (worker, day).
func (r *AttendanceRepository) FindByWorkerDate(ctx context.Context, workerID string, day time.Time) (*models.AttendanceRecord, error) {
	const query = `SELECT id, worker_id, date, type, hours, rain_hours, permit_hours, site_id, notes, created_at, updated_at
        FROM attendance_records WHERE worker_id = $1 AND date = $2`
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, workerID, day); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new entry.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO attendance_records (id, worker_id, date, type, hours, rain_hours, permit_hours, site_id, notes, created_at, updated_at)
        VALUES (:id, :worker_id, :date, :type, :hours, :rain_hours, :permit_hours, :site_id, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// Update modifies an existing entry.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE attendance_records SET type = :type, hours = :hours, rain_hours = :rain_hours, permit_hours = :permit_hours, site_id = :site_id, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

// Delete removes an entry.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM attendance_records WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}
