package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
)

// PayResidual derives the disbursed total and the residual for a pay record.
// Over-disbursement is surfaced as a negative residual, never clamped.
func PayResidual(pay models.PayRecord) models.PayBalance {
	disbursed := decimal.Zero
	for _, d := range pay.Disbursements {
		disbursed = disbursed.Add(d.Amount)
	}
	return models.PayBalance{
		Disbursed: disbursed,
		Residual:  pay.Amount.Sub(disbursed),
	}
}

type payrollRepository interface {
	ListByWorker(ctx context.Context, workerID string) ([]models.PayRecord, error)
	FindByID(ctx context.Context, id string) (*models.PayRecord, error)
	Create(ctx context.Context, record *models.PayRecord) error
	Update(ctx context.Context, record *models.PayRecord) error
	Delete(ctx context.Context, id string) error
	AddDisbursement(ctx context.Context, disbursement *models.Disbursement) error
	DeleteDisbursement(ctx context.Context, payRecordID, disbursementID string) error
}

// CreatePayRecordRequest represents payload for a payroll entry.
type CreatePayRecordRequest struct {
	Year   int             `json:"year" validate:"required,gte=2000,lte=2100"`
	Month  int             `json:"month" validate:"required,gte=1,lte=12"`
	Type   models.PayType  `json:"type" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
	Notes  *string         `json:"notes" validate:"omitempty,max=500"`
}

// AddDisbursementRequest represents payload for a partial payment.
type AddDisbursementRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date" validate:"required"`
	Method *string         `json:"method" validate:"omitempty,max=50"`
}

// PayRecordDetail pairs a pay record with its derived balance.
type PayRecordDetail struct {
	models.PayRecord
	Balance models.PayBalance `json:"balance"`
}

// PayrollService manages pay records and their disbursements.
type PayrollService struct {
	repo      payrollRepository
	workers   workerFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPayrollService constructs a PayrollService.
func NewPayrollService(repo payrollRepository, workers workerFinder, validate *validator.Validate, logger *zap.Logger) *PayrollService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayrollService{repo: repo, workers: workers, validator: validate, logger: logger}
}

// ListByWorker returns a worker's pay records with derived balances.
func (s *PayrollService) ListByWorker(ctx context.Context, workerID string) ([]PayRecordDetail, error) {
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pay records")
	}
	details := make([]PayRecordDetail, 0, len(records))
	for _, record := range records {
		details = append(details, PayRecordDetail{PayRecord: record, Balance: PayResidual(record)})
	}
	return details, nil
}

// Get returns one pay record with its derived balance.
func (s *PayrollService) Get(ctx context.Context, workerID, recordID string) (*PayRecordDetail, error) {
	record, err := s.loadRecord(ctx, workerID, recordID)
	if err != nil {
		return nil, err
	}
	return &PayRecordDetail{PayRecord: *record, Balance: PayResidual(*record)}, nil
}

// Create registers a payroll entry for the worker.
func (s *PayrollService) Create(ctx context.Context, workerID string, req CreatePayRecordRequest) (*PayRecordDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pay record payload")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported pay type")
	}
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}

	record := &models.PayRecord{
		WorkerID: workerID,
		Year:     req.Year,
		Month:    req.Month,
		Type:     req.Type,
		Amount:   req.Amount,
		Notes:    req.Notes,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create pay record")
	}
	return &PayRecordDetail{PayRecord: *record, Balance: PayResidual(*record)}, nil
}

// Delete removes a pay record together with its disbursements.
func (s *PayrollService) Delete(ctx context.Context, workerID, recordID string) error {
	if _, err := s.loadRecord(ctx, workerID, recordID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, recordID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete pay record")
	}
	return nil
}

// AddDisbursement records a partial payment against a pay record.
func (s *PayrollService) AddDisbursement(ctx context.Context, workerID, recordID string, req AddDisbursementRequest) (*PayRecordDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid disbursement payload")
	}
	record, err := s.loadRecord(ctx, workerID, recordID)
	if err != nil {
		return nil, err
	}

	disbursement := &models.Disbursement{
		PayRecordID: record.ID,
		Amount:      req.Amount,
		Date:        NormalizeDate(req.Date),
		Method:      req.Method,
	}
	if err := s.repo.AddDisbursement(ctx, disbursement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add disbursement")
	}

	record.Disbursements = append(record.Disbursements, *disbursement)
	detail := &PayRecordDetail{PayRecord: *record, Balance: PayResidual(*record)}
	if detail.Balance.Residual.IsNegative() {
		s.logger.Warn("pay record over-disbursed",
			zap.String("pay_record_id", record.ID),
			zap.String("residual", detail.Balance.Residual.String()))
	}
	return detail, nil
}

// DeleteDisbursement removes a partial payment.
func (s *PayrollService) DeleteDisbursement(ctx context.Context, workerID, recordID, disbursementID string) error {
	if _, err := s.loadRecord(ctx, workerID, recordID); err != nil {
		return err
	}
	if err := s.repo.DeleteDisbursement(ctx, recordID, disbursementID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "disbursement not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete disbursement")
	}
	return nil
}

func (s *PayrollService) loadWorker(ctx context.Context, workerID string) (*models.Worker, error) {
	worker, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "worker not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load worker")
	}
	return worker, nil
}

func (s *PayrollService) loadRecord(ctx context.Context, workerID, recordID string) (*models.PayRecord, error) {
	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pay record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pay record")
	}
	if record.WorkerID != workerID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "pay record not found")
	}
	return record, nil
}
