package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

// SiteRepository manages persistence for work sites.
type SiteRepository struct {
	db *sqlx.DB
}

// NewSiteRepository constructs a SiteRepository.
func NewSiteRepository(db *sqlx.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// List returns sites matching the provided filters.
func (r *SiteRepository) List(ctx context.Context, filter models.SiteFilter) ([]models.Site, int, error) {
	base := "FROM sites s"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(s.name) LIKE $%d OR LOWER(s.client) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"name":       "s.name",
		"status":     "s.status",
		"start_date": "s.start_date",
		"end_date":   "s.end_date",
		"created_at": "s.created_at",
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "s.created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
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

	query := fmt.Sprintf(`SELECT s.id, s.name, s.address, s.client, s.status, s.contract_amount, s.safety_charge, s.start_date, s.end_date, s.created_at, s.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var sites []models.Site
	if err := r.db.SelectContext(ctx, &sites, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sites: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sites: %w", err)
	}
	return sites, total, nil
}

// ListAll returns every site.
func (r *SiteRepository) ListAll(ctx context.Context) ([]models.Site, error) {
	const query = `SELECT id, name, address, client, status, contract_amount, safety_charge, start_date, end_date, created_at, updated_at
        FROM sites ORDER BY name`
	var sites []models.Site
	if err := r.db.SelectContext(ctx, &sites, query); err != nil {
		return nil, fmt.Errorf("list all sites: %w", err)
	}
	return sites, nil
}

// FindByID fetches a site by ID.
func (r *SiteRepository) FindByID(ctx context.Context, id string) (*models.Site, error) {
	const query = `SELECT id, name, address, client, status, contract_amount, safety_charge, start_date, end_date, created_at, updated_at
        FROM sites WHERE id = $1`
	var site models.Site
	if err := r.db.GetContext(ctx, &site, query, id); err != nil {
		return nil, err
	}
	return &site, nil
}

// Create inserts a new site record.
func (r *SiteRepository) Create(ctx context.Context, site *models.Site) error {
	if site.ID == "" {
		site.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if site.CreatedAt.IsZero() {
		site.CreatedAt = now
	}
	site.UpdatedAt = now
	const query = `INSERT INTO sites (id, name, address, client, status, contract_amount, safety_charge, start_date, end_date, created_at, updated_at)
        VALUES (:id, :name, :address, :client, :status, :contract_amount, :safety_charge, :start_date, :end_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, site); err != nil {
		return fmt.Errorf("create site: %w", err)
	}
	return nil
}

// Update modifies an existing site.
func (r *SiteRepository) Update(ctx context.Context, site *models.Site) error {
	site.UpdatedAt = time.Now().UTC()
	const query = `UPDATE sites SET name = :name, address = :address, client = :client, status = :status, contract_amount = :contract_amount, safety_charge = :safety_charge, start_date = :start_date, end_date = :end_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, site); err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	return nil
}

// Delete removes a site.
func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sites WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	return nil
}
