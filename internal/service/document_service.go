package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
)

// ComputeBundleStatus derives document completeness for an invoice bundle.
func ComputeBundleStatus(bundle models.DocumentBundle) models.BundleStatus {
	total := len(bundle.Documents)
	missing := 0
	for _, doc := range bundle.Documents {
		if !doc.Received {
			missing++
		}
	}

	label := fmt.Sprintf("%d/%d missing", missing, total)
	switch {
	case total == 0:
		label = "no documents"
	case missing == 0:
		label = "complete"
	case missing == total:
		label = "all missing"
	}
	return models.BundleStatus{Label: label, MissingCount: missing, TotalCount: total}
}

type documentRepository interface {
	List(ctx context.Context, filter models.BundleFilter) ([]models.DocumentBundle, int, error)
	FindByID(ctx context.Context, id string) (*models.DocumentBundle, error)
	Create(ctx context.Context, bundle *models.DocumentBundle) error
	Update(ctx context.Context, bundle *models.DocumentBundle) error
	Delete(ctx context.Context, id string) error
	AddItem(ctx context.Context, item *models.DocumentItem) error
	UpdateItem(ctx context.Context, item *models.DocumentItem) error
	DeleteItem(ctx context.Context, bundleID, itemID string) error
}

// CreateBundleRequest represents payload for an invoice bundle.
type CreateBundleRequest struct {
	Number    string          `json:"number" validate:"required,max=100"`
	Supplier  *string         `json:"supplier" validate:"omitempty,max=200"`
	SiteID    *string         `json:"site_id"`
	IssueDate *time.Time      `json:"issue_date"`
	Amount    decimal.Decimal `json:"amount"`
}

// AddDocumentItemRequest represents payload for one expected document.
type AddDocumentItemRequest struct {
	Type        models.DocumentType `json:"type" validate:"required"`
	Description *string             `json:"description" validate:"omitempty,max=500"`
}

// MarkDocumentRequest flips the received flag on a document item.
type MarkDocumentRequest struct {
	Received     bool       `json:"received"`
	ReceivedDate *time.Time `json:"received_date"`
}

// BundleDetail pairs a bundle with its derived completeness status.
type BundleDetail struct {
	models.DocumentBundle
	Status models.BundleStatus `json:"status"`
}

// DocumentService manages DTT/Formulario invoice bundles.
type DocumentService struct {
	repo      documentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(repo documentRepository, validate *validator.Validate, logger *zap.Logger) *DocumentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{repo: repo, validator: validate, logger: logger}
}

// List returns bundles with derived statuses and pagination data.
func (s *DocumentService) List(ctx context.Context, filter models.BundleFilter) ([]BundleDetail, *models.Pagination, error) {
	bundles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bundles")
	}
	details := make([]BundleDetail, 0, len(bundles))
	for _, bundle := range bundles {
		details = append(details, BundleDetail{DocumentBundle: bundle, Status: ComputeBundleStatus(bundle)})
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return details, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one bundle with its derived status.
func (s *DocumentService) Get(ctx context.Context, id string) (*BundleDetail, error) {
	bundle, err := s.loadBundle(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BundleDetail{DocumentBundle: *bundle, Status: ComputeBundleStatus(*bundle)}, nil
}

// Create registers a new invoice bundle.
func (s *DocumentService) Create(ctx context.Context, req CreateBundleRequest) (*BundleDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bundle payload")
	}
	bundle := &models.DocumentBundle{
		Number:    req.Number,
		Supplier:  req.Supplier,
		SiteID:    req.SiteID,
		IssueDate: normalizeOptionalDate(req.IssueDate),
		Amount:    req.Amount,
	}
	if err := s.repo.Create(ctx, bundle); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create bundle")
	}
	return &BundleDetail{DocumentBundle: *bundle, Status: ComputeBundleStatus(*bundle)}, nil
}

// Delete removes a bundle and its items.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if _, err := s.loadBundle(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete bundle")
	}
	return nil
}

// AddItem appends an expected document to a bundle.
func (s *DocumentService) AddItem(ctx context.Context, bundleID string, req AddDocumentItemRequest) (*BundleDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid document payload")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported document type")
	}
	bundle, err := s.loadBundle(ctx, bundleID)
	if err != nil {
		return nil, err
	}

	item := &models.DocumentItem{
		BundleID:    bundle.ID,
		Type:        req.Type,
		Description: req.Description,
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add document")
	}
	bundle.Documents = append(bundle.Documents, *item)
	return &BundleDetail{DocumentBundle: *bundle, Status: ComputeBundleStatus(*bundle)}, nil
}

// MarkItem updates the received flag of a document item.
func (s *DocumentService) MarkItem(ctx context.Context, bundleID, itemID string, req MarkDocumentRequest) (*BundleDetail, error) {
	bundle, err := s.loadBundle(ctx, bundleID)
	if err != nil {
		return nil, err
	}

	var target *models.DocumentItem
	for i := range bundle.Documents {
		if bundle.Documents[i].ID == itemID {
			target = &bundle.Documents[i]
			break
		}
	}
	if target == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}

	target.Received = req.Received
	if req.Received {
		target.ReceivedDate = normalizeOptionalDate(req.ReceivedDate)
	} else {
		target.ReceivedDate = nil
	}
	if err := s.repo.UpdateItem(ctx, target); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update document")
	}
	return &BundleDetail{DocumentBundle: *bundle, Status: ComputeBundleStatus(*bundle)}, nil
}

// DeleteItem removes a document item from a bundle.
func (s *DocumentService) DeleteItem(ctx context.Context, bundleID, itemID string) error {
	if _, err := s.loadBundle(ctx, bundleID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, bundleID, itemID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete document")
	}
	return nil
}

func (s *DocumentService) loadBundle(ctx context.Context, id string) (*models.DocumentBundle, error) {
	bundle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "bundle not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bundle")
	}
	return bundle, nil
}
