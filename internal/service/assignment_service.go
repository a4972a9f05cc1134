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

// ActiveAssignment resolves which unilav event governs the worker on the
// given date. Overlapping event ranges are a tolerated data-quality issue:
// the event with the latest start date wins, with created-at and id as
// deterministic tie-breaks. Returns nil when no event is in effect.
func ActiveAssignment(workerID string, date time.Time, events []models.UnilavEvent) *models.UnilavEvent {
	day := NormalizeDate(date)
	var winner *models.UnilavEvent
	for i := range events {
		ev := &events[i]
		if ev.WorkerID != workerID {
			continue
		}
		if !eventInEffect(*ev, day) {
			continue
		}
		if winner == nil || laterEvent(*ev, *winner) {
			winner = ev
		}
	}
	return winner
}

// IsWorkerActive reports whether the worker counts as employed on the
// reference date. Administrative roles and workers without any unilav history
// are never active; a termination event only deactivates once its start date
// is no longer in the future.
func IsWorkerActive(worker models.Worker, events []models.UnilavEvent, referenceDate time.Time) bool {
	if !worker.Role.Operational() {
		return false
	}
	latest := latestEvent(worker.ID, events)
	if latest == nil {
		return false
	}
	if latest.Kind != models.UnilavTermination {
		return true
	}
	return NormalizeDate(latest.StartDate).After(NormalizeDate(referenceDate))
}

// TerminationCutoff returns the worker's termination start date, normalized,
// once the given date has reached it; nil otherwise. Attendance at or past
// the cutoff is suppressed entirely.
func TerminationCutoff(workerID string, events []models.UnilavEvent, date time.Time) *time.Time {
	cutoff := terminationStart(workerID, events)
	if cutoff == nil {
		return nil
	}
	if NormalizeDate(date).Before(*cutoff) {
		return nil
	}
	return cutoff
}

func terminationStart(workerID string, events []models.UnilavEvent) *time.Time {
	var start *time.Time
	for i := range events {
		ev := events[i]
		if ev.WorkerID != workerID || ev.Kind != models.UnilavTermination {
			continue
		}
		day := NormalizeDate(ev.StartDate)
		if start == nil || day.After(*start) {
			start = &day
		}
	}
	return start
}

func eventInEffect(ev models.UnilavEvent, day time.Time) bool {
	if day.Before(NormalizeDate(ev.StartDate)) {
		return false
	}
	// Absent end date acts as a far-future sentinel.
	if end := ev.EffectiveEnd(); end != nil && day.After(NormalizeDate(*end)) {
		return false
	}
	return true
}

func laterEvent(a, b models.UnilavEvent) bool {
	aStart, bStart := NormalizeDate(a.StartDate), NormalizeDate(b.StartDate)
	if !aStart.Equal(bStart) {
		return aStart.After(bStart)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func latestEvent(workerID string, events []models.UnilavEvent) *models.UnilavEvent {
	var latest *models.UnilavEvent
	for i := range events {
		ev := &events[i]
		if ev.WorkerID != workerID {
			continue
		}
		if latest == nil || laterEvent(*ev, *latest) {
			latest = ev
		}
	}
	return latest
}

type unilavRepository interface {
	ListByWorker(ctx context.Context, workerID string) ([]models.UnilavEvent, error)
	FindByID(ctx context.Context, id string) (*models.UnilavEvent, error)
	Create(ctx context.Context, event *models.UnilavEvent) error
	Update(ctx context.Context, event *models.UnilavEvent) error
	Delete(ctx context.Context, id string) error
}

type workerFinder interface {
	FindByID(ctx context.Context, id string) (*models.Worker, error)
}

// CreateUnilavRequest represents payload for recording a unilav event.
type CreateUnilavRequest struct {
	Kind         models.UnilavEventKind `json:"kind" validate:"required"`
	StartDate    time.Time              `json:"start_date" validate:"required"`
	EndDate      *time.Time             `json:"end_date"`
	SiteID       *string                `json:"site_id"`
	ContractType models.ContractType    `json:"contract_type" validate:"required"`
	Level        *string                `json:"level" validate:"omitempty,max=50"`
	Schedule     *string                `json:"schedule" validate:"omitempty,max=50"`
}

// UpdateUnilavRequest represents payload for correcting a unilav event.
type UpdateUnilavRequest struct {
	Kind         models.UnilavEventKind `json:"kind" validate:"required"`
	StartDate    time.Time              `json:"start_date" validate:"required"`
	EndDate      *time.Time             `json:"end_date"`
	SiteID       *string                `json:"site_id"`
	ContractType models.ContractType    `json:"contract_type" validate:"required"`
	Level        *string                `json:"level" validate:"omitempty,max=50"`
	Schedule     *string                `json:"schedule" validate:"omitempty,max=50"`
}

// WorkerStatus is the derived employment status for a worker on a date.
type WorkerStatus struct {
	WorkerID          string              `json:"worker_id"`
	Date              string              `json:"date"`
	Active            bool                `json:"active"`
	ActiveSiteID      *string             `json:"active_site_id,omitempty"`
	ActiveEvent       *models.UnilavEvent `json:"active_event,omitempty"`
	TerminationCutoff *time.Time          `json:"termination_cutoff,omitempty"`
}

// AssignmentService manages unilav events and derived employment status.
type AssignmentService struct {
	repo      unilavRepository
	workers   workerFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(repo unilavRepository, workers workerFinder, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, workers: workers, validator: validate, logger: logger}
}

// ListByWorker returns a worker's unilav history.
func (s *AssignmentService) ListByWorker(ctx context.Context, workerID string) ([]models.UnilavEvent, error) {
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}
	events, err := s.repo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unilav events")
	}
	return events, nil
}

// Create records a new unilav event for the worker.
func (s *AssignmentService) Create(ctx context.Context, workerID string, req CreateUnilavRequest) (*models.UnilavEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unilav payload")
	}
	if !req.Kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported unilav kind")
	}
	if !req.ContractType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported contract type")
	}
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}

	event := &models.UnilavEvent{
		WorkerID:     workerID,
		Kind:         req.Kind,
		StartDate:    NormalizeDate(req.StartDate),
		EndDate:      normalizeOptionalDate(req.EndDate),
		SiteID:       req.SiteID,
		ContractType: req.ContractType,
		Level:        req.Level,
		Schedule:     req.Schedule,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create unilav event")
	}
	return event, nil
}

// Update corrects an existing unilav event.
func (s *AssignmentService) Update(ctx context.Context, workerID, eventID string, req UpdateUnilavRequest) (*models.UnilavEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unilav payload")
	}
	if !req.Kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported unilav kind")
	}
	if !req.ContractType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported contract type")
	}

	event, err := s.loadEvent(ctx, workerID, eventID)
	if err != nil {
		return nil, err
	}

	event.Kind = req.Kind
	event.StartDate = NormalizeDate(req.StartDate)
	event.EndDate = normalizeOptionalDate(req.EndDate)
	event.SiteID = req.SiteID
	event.ContractType = req.ContractType
	event.Level = req.Level
	event.Schedule = req.Schedule

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update unilav event")
	}
	return event, nil
}

// Delete removes a unilav event.
func (s *AssignmentService) Delete(ctx context.Context, workerID, eventID string) error {
	if _, err := s.loadEvent(ctx, workerID, eventID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete unilav event")
	}
	return nil
}

// Active resolves the assignment in effect for the worker on the date.
func (s *AssignmentService) Active(ctx context.Context, workerID string, date time.Time) (*models.UnilavEvent, error) {
	if _, err := s.loadWorker(ctx, workerID); err != nil {
		return nil, err
	}
	events, err := s.repo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unilav events")
	}
	return ActiveAssignment(workerID, date, events), nil
}

// Status derives the worker's employment status on the date.
func (s *AssignmentService) Status(ctx context.Context, workerID string, date time.Time) (*WorkerStatus, error) {
	worker, err := s.loadWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unilav events")
	}

	status := &WorkerStatus{
		WorkerID:          workerID,
		Date:              NormalizeDate(date).Format("2006-01-02"),
		Active:            IsWorkerActive(*worker, events, date),
		TerminationCutoff: TerminationCutoff(workerID, events, date),
	}
	if active := ActiveAssignment(workerID, date, events); active != nil {
		status.ActiveEvent = active
		status.ActiveSiteID = active.SiteID
	}
	return status, nil
}

func (s *AssignmentService) loadWorker(ctx context.Context, workerID string) (*models.Worker, error) {
	worker, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "worker not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load worker")
	}
	return worker, nil
}

func (s *AssignmentService) loadEvent(ctx context.Context, workerID, eventID string) (*models.UnilavEvent, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "unilav event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load unilav event")
	}
	if event.WorkerID != workerID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unilav event not found")
	}
	return event, nil
}

func normalizeOptionalDate(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := NormalizeDate(*value)
	return &normalized
}
