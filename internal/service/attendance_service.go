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

// MonthlySummary folds one worker's month of attendance into the sheet
// totals. Days at or after the worker's termination cutoff contribute
// nothing, not even as absence. Weekdays without a record count as implicit
// absences; weekends without a record contribute nothing.
func MonthlySummary(workerID string, year int, month time.Month, records []models.AttendanceRecord, events []models.UnilavEvent) models.AttendanceSummary {
	summary := models.AttendanceSummary{
		WorkerID:  workerID,
		Year:      year,
		Month:     int(month),
		SiteHours: map[string]float64{},
	}

	byDay := make(map[string]models.AttendanceRecord, len(records))
	for _, rec := range records {
		if rec.WorkerID != workerID {
			continue
		}
		byDay[NormalizeDate(rec.Date).Format("2006-01-02")] = rec
	}

	cutoff := terminationStart(workerID, events)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		if cutoff != nil && !day.Before(*cutoff) {
			continue
		}

		rec, ok := byDay[day.Format("2006-01-02")]
		if !ok {
			if !IsWeekend(day) {
				summary.AbsenceDays++
			}
			continue
		}

		switch rec.Type {
		case models.AttendanceWork:
			summary.WorkDays++
			summary.WorkedHours += rec.Hours
			if rec.RainHours > 0 {
				summary.RainHours += rec.RainHours
			}
			if rec.PermitHours > 0 {
				summary.PermitHours += rec.PermitHours
			}
			if rec.SiteID != nil {
				summary.SiteHours[*rec.SiteID] += rec.Hours
			}
		case models.AttendanceSickness:
			summary.SicknessDays++
		case models.AttendanceVacation:
			summary.VacationDays++
		case models.AttendanceHoliday:
			summary.HolidayDays++
		case models.AttendanceAbsence:
			summary.AbsenceDays++
		case models.AttendanceRain:
			summary.RainHours += rec.RainHours
		}
	}

	return summary
}

type attendanceRepository interface {
	ListByWorkerMonth(ctx context.Context, workerID string, year int, month int) ([]models.AttendanceRecord, error)
	FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	FindByWorkerDate(ctx context.Context, workerID string, day time.Time) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
	Delete(ctx context.Context, id string) error
}

type unilavLister interface {
	ListByWorker(ctx context.Context, workerID string) ([]models.UnilavEvent, error)
}

// UpsertAttendanceRequest represents payload for one worker-day entry.
type UpsertAttendanceRequest struct {
	Date        time.Time             `json:"date" validate:"required"`
	Type        models.AttendanceType `json:"type" validate:"required"`
	Hours       float64               `json:"hours" validate:"gte=0,lte=24"`
	RainHours   float64               `json:"rain_hours" validate:"gte=0,lte=24"`
	PermitHours float64               `json:"permit_hours" validate:"gte=0,lte=24"`
	SiteID      *string               `json:"site_id"`
	Notes       *string               `json:"notes" validate:"omitempty,max=500"`
}

// AttendanceService manages attendance entries and monthly summaries.
type AttendanceService struct {
	repo      attendanceRepository
	unilav    unilavLister
	workers   workerFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, unilav unilavLister, workers workerFinder, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, unilav: unilav, workers: workers, validator: validate, logger: logger}
}

// ListMonth returns the raw attendance entries for a worker's month.
func (s *AttendanceService) ListMonth(ctx context.Context, workerID string, year, month int) ([]models.AttendanceRecord, error) {
	if err := validYearMonth(year, month); err != nil {
		return nil, err
	}
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByWorkerMonth(ctx, workerID, year, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// Summary computes the monthly attendance summary for a worker.
func (s *AttendanceService) Summary(ctx context.Context, workerID string, year, month int) (*models.AttendanceSummary, error) {
	if err := validYearMonth(year, month); err != nil {
		return nil, err
	}
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByWorkerMonth(ctx, workerID, year, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	events, err := s.unilav.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unilav events")
	}
	summary := MonthlySummary(workerID, year, time.Month(month), records, events)
	return &summary, nil
}

// Upsert records or replaces the entry for (worker, day).
func (s *AttendanceService) Upsert(ctx context.Context, workerID string, req UpsertAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported attendance type")
	}
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}

	day := NormalizeDate(req.Date)
	existing, err := s.repo.FindByWorkerDate(ctx, workerID, day)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	record := existing
	if record == nil {
		record = &models.AttendanceRecord{WorkerID: workerID, Date: day}
	}
	record.Type = req.Type
	record.Hours = req.Hours
	record.RainHours = req.RainHours
	record.PermitHours = req.PermitHours
	record.SiteID = req.SiteID
	record.Notes = req.Notes

	if existing == nil {
		err = s.repo.Create(ctx, record)
	} else {
		err = s.repo.Update(ctx, record)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}
	return record, nil
}

// Delete removes an attendance entry.
func (s *AttendanceService) Delete(ctx context.Context, workerID, recordID string) error {
	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	if record.WorkerID != workerID {
		return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
	}
	if err := s.repo.Delete(ctx, recordID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance")
	}
	return nil
}

func (s *AttendanceService) loadWorker(ctx context.Context, workerID string) (*models.Worker, error) {
	worker, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "worker not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load worker")
	}
	return worker, nil
}

func validYearMonth(year, month int) error {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return appErrors.Clone(appErrors.ErrValidation, "invalid year/month")
	}
	return nil
}
