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

// DocumentRepository manages persistence for invoice bundles and their
// expected documents.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs a DocumentRepository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// List returns bundles matching the provided filters, documents attached.
func (r *DocumentRepository) List(ctx context.Context, filter models.BundleFilter) ([]models.DocumentBundle, int, error) {
	base := "FROM document_bundles b"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.SiteID != "" {
		conditions = append(conditions, fmt.Sprintf("b.site_id = $%d", len(args)+1))
		args = append(args, filter.SiteID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(b.number) LIKE $%d OR LOWER(b.supplier) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"number":     "b.number",
		"issue_date": "b.issue_date",
		"created_at": "b.created_at",
	}
	if sortBy == "" {
		sortBy = "issue_date"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "b.issue_date"
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

	query := fmt.Sprintf(`SELECT b.id, b.number, b.supplier, b.site_id, b.issue_date, b.amount, b.created_at, b.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var bundles []models.DocumentBundle
	if err := r.db.SelectContext(ctx, &bundles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bundles: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count bundles: %w", err)
	}
	if err := r.attachItems(ctx, bundles); err != nil {
		return nil, 0, err
	}
	return bundles, total, nil
}

// FindByID fetches a bundle with its documents.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.DocumentBundle, error) {
	const query = `SELECT id, number, supplier, site_id, issue_date, amount, created_at, updated_at
        FROM document_bundles WHERE id = $1`
	var bundle models.DocumentBundle
	if err := r.db.GetContext(ctx, &bundle, query, id); err != nil {
		return nil, err
	}
	bundles := []models.DocumentBundle{bundle}
	if err := r.attachItems(ctx, bundles); err != nil {
		return nil, err
	}
	return &bundles[0], nil
}

// Create inserts a new bundle record.
func (r *DocumentRepository) Create(ctx context.Context, bundle *models.DocumentBundle) error {
	if bundle.ID == "" {
		bundle.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if bundle.CreatedAt.IsZero() {
		bundle.CreatedAt = now
	}
	bundle.UpdatedAt = now
	const query = `INSERT INTO document_bundles (id, number, supplier, site_id, issue_date, amount, created_at, updated_at)
        VALUES (:id, :number, :supplier, :site_id, :issue_date, :amount, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, bundle); err != nil {
		return fmt.Errorf("create bundle: %w", err)
	}
	return nil
}

// Update modifies an existing bundle.
func (r *DocumentRepository) Update(ctx context.Context, bundle *models.DocumentBundle) error {
	bundle.UpdatedAt = time.Now().UTC()
	const query = `UPDATE document_bundles SET number = :number, supplier = :supplier, site_id = :site_id, issue_date = :issue_date, amount = :amount, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, bundle); err != nil {
		return fmt.Errorf("update bundle: %w", err)
	}
	return nil
}

// Delete removes a bundle together with its documents.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete bundle: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_items WHERE bundle_id = $1`, id); err != nil {
		return fmt.Errorf("delete bundle items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM document_bundles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete bundle: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete bundle: %w", err)
	}
	return nil
}

// AddItem inserts an expected document into a bundle.
func (r *DocumentRepository) AddItem(ctx context.Context, item *models.DocumentItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO document_items (id, bundle_id, type, description, received, received_date, created_at)
        VALUES (:id, :bundle_id, :type, :description, :received, :received_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create bundle item: %w", err)
	}
	return nil
}

// UpdateItem modifies an expected document.
func (r *DocumentRepository) UpdateItem(ctx context.Context, item *models.DocumentItem) error {
	const query = `UPDATE document_items SET type = :type, description = :description, received = :received, received_date = :received_date WHERE id = :id AND bundle_id = :bundle_id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update bundle item: %w", err)
	}
	return nil
}

// DeleteItem removes an expected document from a bundle.
func (r *DocumentRepository) DeleteItem(ctx context.Context, bundleID, itemID string) error {
	const query = `DELETE FROM document_items WHERE id = $1 AND bundle_id = $2`
	if _, err := r.db.ExecContext(ctx, query, itemID, bundleID); err != nil {
		return fmt.Errorf("delete bundle item: %w", err)
	}
	return nil
}

func (r *DocumentRepository) attachItems(ctx context.Context, bundles []models.DocumentBundle) error {
	if len(bundles) == 0 {
		return nil
	}
	ids := make([]string, 0, len(bundles))
	for _, bundle := range bundles {
		ids = append(ids, bundle.ID)
	}
	query, args, err := sqlx.In(`SELECT id, bundle_id, type, description, received, received_date, created_at
        FROM document_items WHERE bundle_id IN (?) ORDER BY created_at, id`, ids)
	if err != nil {
		return fmt.Errorf("build item query: %w", err)
	}
	query = r.db.Rebind(query)
	var items []models.DocumentItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return fmt.Errorf("list bundle items: %w", err)
	}
	byBundle := make(map[string][]models.DocumentItem, len(bundles))
	for _, item := range items {
		byBundle[item.BundleID] = append(byBundle[item.BundleID], item)
	}
	for i := range bundles {
		bundles[i].Documents = byBundle[bundles[i].ID]
	}
	return nil
}
