package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
	"github.com/Fodapt/marrelsrl-sub002/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// Valid returns true when the format is a supported value.
func (f ExportFormat) Valid() bool {
	return f == ExportFormatCSV || f == ExportFormatPDF
}

// ContentType returns the MIME type for the rendered file.
func (f ExportFormat) ContentType() string {
	if f == ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

type attendanceMonthProvider interface {
	ListForMonth(ctx context.Context, year int, month time.Month) ([]models.AttendanceRecord, error)
}

type payLedgerProvider interface {
	ListByYear(ctx context.Context, year int) ([]models.PayRecord, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService builds attendance sheet and pay ledger downloads.
type ExportService struct {
	workers    workerLister
	events     unilavEventLister
	attendance attendanceMonthProvider
	payroll    payLedgerProvider
	csv        csvRenderer
	pdf        pdfRenderer
	logger     *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(workers workerLister, events unilavEventLister, attendance attendanceMonthProvider, payroll payLedgerProvider, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		workers:    workers,
		events:     events,
		attendance: attendance,
		payroll:    payroll,
		csv:        csv,
		pdf:        pdf,
		logger:     logger,
	}
}

// AttendanceSheet renders the monthly attendance summary for every
// operational worker.
func (s *ExportService) AttendanceSheet(ctx context.Context, year int, month time.Month, format ExportFormat) (*ExportFile, error) {
	if err := validYearMonth(year, int(month)); err != nil {
		return nil, err
	}
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	workers, err := s.workers.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list workers")
	}
	records, err := s.attendance.ListForMonth(ctx, year, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignment events")
	}

	sort.Slice(workers, func(i, j int) bool {
		if workers[i].LastName == workers[j].LastName {
			return workers[i].FirstName < workers[j].FirstName
		}
		return workers[i].LastName < workers[j].LastName
	})

	rows := make([]map[string]string, 0, len(workers))
	for _, worker := range workers {
		if !worker.Role.Operational() {
			continue
		}
		summary := MonthlySummary(worker.ID, year, month, records, events)
		rows = append(rows, map[string]string{
			"Worker":       worker.LastName + " " + worker.FirstName,
			"Work Days":    fmt.Sprintf("%d", summary.WorkDays),
			"Hours":        fmt.Sprintf("%.1f", summary.WorkedHours),
			"Rain Hours":   fmt.Sprintf("%.1f", summary.RainHours),
			"Permit Hours": fmt.Sprintf("%.1f", summary.PermitHours),
			"Sickness":     fmt.Sprintf("%d", summary.SicknessDays),
			"Vacation":     fmt.Sprintf("%d", summary.VacationDays),
			"Holidays":     fmt.Sprintf("%d", summary.HolidayDays),
			"Absences":     fmt.Sprintf("%d", summary.AbsenceDays),
		})
	}

	dataset := export.Dataset{
		Headers: []string{"Worker", "Work Days", "Hours", "Rain Hours", "Permit Hours", "Sickness", "Vacation", "Holidays", "Absences"},
		Rows:    rows,
	}
	title := fmt.Sprintf("Attendance Sheet %04d-%02d", year, month)
	filename := fmt.Sprintf("attendance_%04d_%02d.%s", year, month, format)
	return s.render(dataset, title, filename, format)
}

// PayLedger renders every pay record of the year with its disbursement
// balance.
func (s *ExportService) PayLedger(ctx context.Context, year int, format ExportFormat) (*ExportFile, error) {
	if year < 2000 || year > 2100 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "year out of range")
	}
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	workers, err := s.workers.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list workers")
	}
	names := make(map[string]string, len(workers))
	for _, worker := range workers {
		names[worker.ID] = worker.LastName + " " + worker.FirstName
	}

	pays, err := s.payroll.ListByYear(ctx, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pay records")
	}
	sort.Slice(pays, func(i, j int) bool {
		if names[pays[i].WorkerID] == names[pays[j].WorkerID] {
			return pays[i].Month < pays[j].Month
		}
		return names[pays[i].WorkerID] < names[pays[j].WorkerID]
	})

	rows := make([]map[string]string, 0, len(pays))
	for _, pay := range pays {
		balance := PayResidual(pay)
		rows = append(rows, map[string]string{
			"Worker":    names[pay.WorkerID],
			"Period":    fmt.Sprintf("%04d-%02d", pay.Year, pay.Month),
			"Type":      string(pay.Type),
			"Amount":    pay.Amount.StringFixed(2),
			"Disbursed": balance.Disbursed.StringFixed(2),
			"Residual":  balance.Residual.StringFixed(2),
		})
	}

	dataset := export.Dataset{
		Headers: []string{"Worker", "Period", "Type", "Amount", "Disbursed", "Residual"},
		Rows:    rows,
	}
	title := fmt.Sprintf("Pay Ledger %d", year)
	filename := fmt.Sprintf("pay_ledger_%d.%s", year, format)
	return s.render(dataset, title, filename, format)
}

func (s *ExportService) render(dataset export.Dataset, title, filename string, format ExportFormat) (*ExportFile, error) {
	var payload []byte
	var err error
	switch format {
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		payload, err = s.csv.Render(dataset)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{Filename: filename, ContentType: format.ContentType(), Payload: payload}, nil
}
