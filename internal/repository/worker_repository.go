package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

// WorkerRepository manages persistence for worker records.
type WorkerRepository struct {
	db *sqlx.DB
}

// NewWorkerRepository constructs a WorkerRepository.
func NewWorkerRepository(db *sqlx.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

// List returns workers matching the provided filters.
func (r *WorkerRepository) List(ctx context.Context, filter models.WorkerFilter) ([]models.Worker, int, error) {
	base := "FROM workers w"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("w.role = $%d", len(args)+1))
		args = append(args, *filter.Role)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(w.first_name) LIKE $%d OR LOWER(w.last_name) LIKE $%d OR LOWER(w.fiscal_code) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"last_name":  "w.last_name",
		"first_name": "w.first_name",
		"role":       "w.role",
		"created_at": "w.created_at",
	}
	if sortBy == "" {
		sortBy = "last_name"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "w.last_name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT w.id, w.first_name, w.last_name, w.fiscal_code, w.role, w.phone, w.birth_date, w.created_at, w.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var workers []models.Worker
	if err := r.db.SelectContext(ctx, &workers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list workers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count workers: %w", err)
	}
	return workers, total, nil
}

// ListAll returns every worker ordered by name.
func (r *WorkerRepository) ListAll(ctx context.Context) ([]models.Worker, error) {
	const query = `SELECT id, first_name, last_name, fiscal_code, role, phone, birth_date, created_at, updated_at
        FROM workers ORDER BY last_name, first_name`
	var workers []models.Worker
	if err := r.db.SelectContext(ctx, &workers, query); err != nil {
		return nil, fmt.Errorf("list all workers: %w", err)
	}
	return workers, nil
}

// FindByID fetches a worker by ID.
func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*models.Worker, error) {
	const query = `SELECT id, first_name, last_name, fiscal_code, role, phone, birth_date, created_at, updated_at
        FROM workers WHERE id = $1`
	var worker models.Worker
	if err := r.db.GetContext(ctx, &worker, query, id); err != nil {
		return nil, err
	}
	return &worker, nil
}

// ExistsByFiscalCode checks if a worker with the fiscal code exists,
// optionally excluding an ID.
func (r *WorkerRepository) ExistsByFiscalCode(ctx context.Context, fiscalCode, excludeID string) (bool, error) {
	query := "SELECT 1 FROM workers WHERE fiscal_code = $1"
	args := []interface{}{fiscalCode}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check fiscal code: %w", err)
	}
	return true, nil
}

// Create inserts a new worker record.
func (r *WorkerRepository) Create(ctx context.Context, worker *models.Worker) error {
	if worker.ID == "" {
		worker.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if worker.CreatedAt.IsZero() {
		worker.CreatedAt = now
	}
	worker.UpdatedAt = now
	const query = `INSERT INTO workers (id, first_name, last_name, fiscal_code, role, phone, birth_date, created_at, updated_at)
        VALUES (:id, :first_name, :last_name, :fiscal_code, :role, :phone, :birth_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, worker); err != nil {
		return fmt.Errorf("create worker: %w", err)
	}
	return nil
}

// Update modifies an existing worker.
func (r *WorkerRepository) Update(ctx context.Context, worker *models.Worker) error {
	worker.UpdatedAt = time.Now().UTC()
	const query = `UPDATE workers SET first_name = :first_name, last_name = :last_name, fiscal_code = :fiscal_code, role = :role, phone = :phone, birth_date = :birth_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, worker); err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	return nil
}

// Delete removes a worker.
func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM workers WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	return nil
}
