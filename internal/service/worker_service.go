package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
)

type workerRepository interface {
	List(ctx context.Context, filter models.WorkerFilter) ([]models.Worker, int, error)
	FindByID(ctx context.Context, id string) (*models.Worker, error)
	ExistsByFiscalCode(ctx context.Context, fiscalCode, excludeID string) (bool, error)
	Create(ctx context.Context, worker *models.Worker) error
	Update(ctx context.Context, worker *models.Worker) error
	Delete(ctx context.Context, id string) error
}

// CreateWorkerRequest represents payload for registering a worker.
type CreateWorkerRequest struct {
	FirstName  string            `json:"first_name" validate:"required,max=100"`
	LastName   string            `json:"last_name" validate:"required,max=100"`
	FiscalCode *string           `json:"fiscal_code" validate:"omitempty,len=16"`
	Role       models.WorkerRole `json:"role" validate:"required"`
	Phone      *string           `json:"phone" validate:"omitempty,max=50"`
	BirthDate  *time.Time        `json:"birth_date"`
}

// UpdateWorkerRequest represents payload for updating a worker.
type UpdateWorkerRequest struct {
	FirstName  string            `json:"first_name" validate:"required,max=100"`
	LastName   string            `json:"last_name" validate:"required,max=100"`
	FiscalCode *string           `json:"fiscal_code" validate:"omitempty,len=16"`
	Role       models.WorkerRole `json:"role" validate:"required"`
	Phone      *string           `json:"phone" validate:"omitempty,max=50"`
	BirthDate  *time.Time        `json:"birth_date"`
}

// WorkerService orchestrates worker registry operations.
type WorkerService struct {
	repo      workerRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewWorkerService constructs a WorkerService.
func NewWorkerService(repo workerRepository, validate *validator.Validate, logger *zap.Logger) *WorkerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerService{repo: repo, validator: validate, logger: logger}
}

// List returns workers plus pagination data.
func (s *WorkerService) List(ctx context.Context, filter models.WorkerFilter) ([]models.Worker, *models.Pagination, error) {
	workers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list workers")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return workers, pagination, nil
}

// Get returns a worker by id.
func (s *WorkerService) Get(ctx context.Context, id string) (*models.Worker, error) {
	worker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "worker not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load worker")
	}
	return worker, nil
}

// Create registers a new worker.
func (s *WorkerService) Create(ctx context.Context, req CreateWorkerRequest) (*models.Worker, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid worker payload")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported worker role")
	}
	if err := s.ensureUniqueFiscalCode(ctx, req.FiscalCode, ""); err != nil {
		return nil, err
	}

	worker := &models.Worker{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		FiscalCode: normalizeFiscalCode(req.FiscalCode),
		Role:       req.Role,
		Phone:      req.Phone,
		BirthDate:  normalizeOptionalDate(req.BirthDate),
	}
	if err := s.repo.Create(ctx, worker); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create worker")
	}
	return worker, nil
}

// Update modifies an existing worker.
func (s *WorkerService) Update(ctx context.Context, id string, req UpdateWorkerRequest) (*models.Worker, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid worker payload")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported worker role")
	}

	worker, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueFiscalCode(ctx, req.FiscalCode, id); err != nil {
		return nil, err
	}

	worker.FirstName = strings.TrimSpace(req.FirstName)
	worker.LastName = strings.TrimSpace(req.LastName)
	worker.FiscalCode = normalizeFiscalCode(req.FiscalCode)
	worker.Role = req.Role
	worker.Phone = req.Phone
	worker.BirthDate = normalizeOptionalDate(req.BirthDate)

	if err := s.repo.Update(ctx, worker); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update worker")
	}
	return worker, nil
}

// Delete removes a worker from the registry.
func (s *WorkerService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete worker")
	}
	return nil
}

func (s *WorkerService) ensureUniqueFiscalCode(ctx context.Context, fiscalCode *string, excludeID string) error {
	normalized := normalizeFiscalCode(fiscalCode)
	if normalized == nil {
		return nil
	}
	exists, err := s.repo.ExistsByFiscalCode(ctx, *normalized, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check fiscal code uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "fiscal code already registered")
	}
	return nil
}

func normalizeFiscalCode(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.ToUpper(strings.TrimSpace(*value))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
