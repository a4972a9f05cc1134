package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
)

type certificationRepository interface {
	ListByWorker(ctx context.Context, workerID string) ([]models.CertificationRecord, error)
	ListAll(ctx context.Context) ([]models.CertificationRecord, error)
	FindByID(ctx context.Context, id string) (*models.CertificationRecord, error)
	Create(ctx context.Context, record *models.CertificationRecord) error
	Update(ctx context.Context, record *models.CertificationRecord) error
	Delete(ctx context.Context, id string) error
	// AppendRenewal persists the ledger entry and the new current expiry in
	// one transaction: both changes land or neither does.
	AppendRenewal(ctx context.Context, record *models.CertificationRecord, renewal *models.CertificationRenewal) error
}

// CreateCertificationRequest represents payload for a certification record.
type CreateCertificationRequest struct {
	Category   models.CertificationCategory `json:"category" validate:"required"`
	Name       string                       `json:"name" validate:"required,max=200"`
	ExpiryDate *time.Time                   `json:"expiry_date"`
}

// AddRenewalRequest represents payload for appending a renewal to the ledger.
type AddRenewalRequest struct {
	NewExpiry time.Time `json:"new_expiry" validate:"required"`
}

// CertificationDetail pairs a certification with its expiry classification.
type CertificationDetail struct {
	models.CertificationRecord
	Expiry models.ExpiryClassification `json:"expiry"`
}

// CertificationService manages course and medical-visit certifications.
type CertificationService struct {
	repo      certificationRepository
	workers   workerFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCertificationService constructs a CertificationService.
func NewCertificationService(repo certificationRepository, workers workerFinder, validate *validator.Validate, logger *zap.Logger) *CertificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificationService{repo: repo, workers: workers, validator: validate, logger: logger}
}

// ListByWorker returns a worker's certifications classified against the
// reference date.
func (s *CertificationService) ListByWorker(ctx context.Context, workerID string, today time.Time) ([]CertificationDetail, error) {
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list certifications")
	}
	return classifyAll(records, today), nil
}

// Expiring returns every certification that is expired or upcoming on the
// reference date.
func (s *CertificationService) Expiring(ctx context.Context, today time.Time) ([]CertificationDetail, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list certifications")
	}
	var alerts []CertificationDetail
	for _, detail := range classifyAll(records, today) {
		if detail.Expiry.Status == models.ExpiryExpired || detail.Expiry.Status == models.ExpiryUpcoming {
			alerts = append(alerts, detail)
		}
	}
	return alerts, nil
}

// Create registers a certification for the worker.
func (s *CertificationService) Create(ctx context.Context, workerID string, req CreateCertificationRequest) (*models.CertificationRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid certification payload")
	}
	if !req.Category.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported certification category")
	}
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}

	record := &models.CertificationRecord{
		WorkerID:   workerID,
		Category:   req.Category,
		Name:       req.Name,
		ExpiryDate: normalizeOptionalDate(req.ExpiryDate),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create certification")
	}
	return record, nil
}

// AddRenewal appends a prior-expiry to new-expiry transition to the ledger
// and moves the current expiry forward atomically. History entries are never
// rewritten or deleted.
func (s *CertificationService) AddRenewal(ctx context.Context, workerID, certificationID string, req AddRenewalRequest) (*models.CertificationRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid renewal payload")
	}
	record, err := s.loadCertification(ctx, workerID, certificationID)
	if err != nil {
		return nil, err
	}

	newExpiry := NormalizeDate(req.NewExpiry)
	if len(record.History) > 0 {
		newest := record.History[len(record.History)-1]
		if record.ExpiryDate == nil || !sameCivilDay(*record.ExpiryDate, newest.NewExpiry) {
			return nil, appErrors.Clone(appErrors.ErrLedgerConflict, "certification expiry out of sync with history")
		}
	}

	renewal := &models.CertificationRenewal{
		CertificationID: record.ID,
		PreviousExpiry:  record.ExpiryDate,
		NewExpiry:       newExpiry,
	}
	record.ExpiryDate = &newExpiry
	if err := s.repo.AppendRenewal(ctx, record, renewal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to append renewal")
	}
	record.History = append(record.History, *renewal)
	return record, nil
}

// Delete removes a certification together with its ledger.
func (s *CertificationService) Delete(ctx context.Context, workerID, certificationID string) error {
	if _, err := s.loadCertification(ctx, workerID, certificationID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, certificationID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete certification")
	}
	return nil
}

func (s *CertificationService) loadWorker(ctx context.Context, workerID string) (*models.Worker, error) {
	worker, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "worker not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load worker")
	}
	return worker, nil
}

func (s *CertificationService) loadCertification(ctx context.Context, workerID, id string) (*models.CertificationRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "certification not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load certification")
	}
	if record.WorkerID != workerID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "certification not found")
	}
	return record, nil
}

func classifyAll(records []models.CertificationRecord, today time.Time) []CertificationDetail {
	details := make([]CertificationDetail, 0, len(records))
	for _, record := range records {
		details = append(details, CertificationDetail{
			CertificationRecord: record,
			Expiry:              ClassifyExpiry(record.ExpiryDate, today),
		})
	}
	return details
}
