package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

type stubAttendanceMonths struct {
	records []models.AttendanceRecord
}

func (s *stubAttendanceMonths) ListForMonth(_ context.Context, _ int, _ time.Month) ([]models.AttendanceRecord, error) {
	return s.records, nil
}

type stubPayLedger struct {
	pays []models.PayRecord
}

func (s *stubPayLedger) ListByYear(_ context.Context, _ int) ([]models.PayRecord, error) {
	return s.pays, nil
}

func TestAttendanceSheetCSVListsOperationalWorkers(t *testing.T) {
	workers := &stubWorkerLister{workers: []models.Worker{
		{ID: "w1", FirstName: "Mario", LastName: "Rossi", Role: models.RoleSiteWorker},
		{ID: "w2", FirstName: "Anna", LastName: "Verdi", Role: models.RoleAdministrative},
	}}
	attendance := &stubAttendanceMonths{records: []models.AttendanceRecord{
		{WorkerID: "w1", Date: date(2025, time.September, 1), Type: models.AttendanceWork, Hours: 8},
	}}
	events := &stubEventLister{}

	svc := NewExportService(workers, events, attendance, &stubPayLedger{}, zap.NewNop(), nil, nil)

	file, err := svc.AttendanceSheet(context.Background(), 2025, time.September, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "attendance_2025_09.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	body := string(file.Payload)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	// Header plus one row: administrative staff stays off the sheet.
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Work Days")
	assert.Contains(t, lines[1], "Rossi Mario")
	assert.Contains(t, lines[1], "8.0")
}

func TestAttendanceSheetRejectsBadInput(t *testing.T) {
	svc := NewExportService(&stubWorkerLister{}, &stubEventLister{}, &stubAttendanceMonths{}, &stubPayLedger{}, zap.NewNop(), nil, nil)

	_, err := svc.AttendanceSheet(context.Background(), 2025, time.Month(13), ExportFormatCSV)
	require.Error(t, err)

	_, err = svc.AttendanceSheet(context.Background(), 2025, time.September, ExportFormat("xlsx"))
	require.Error(t, err)
}

func TestPayLedgerCSVIncludesResidual(t *testing.T) {
	workers := &stubWorkerLister{workers: []models.Worker{
		{ID: "w1", FirstName: "Mario", LastName: "Rossi", Role: models.RoleSiteWorker},
	}}
	payroll := &stubPayLedger{pays: []models.PayRecord{
		{
			ID: "p1", WorkerID: "w1", Year: 2025, Month: 6, Type: models.PayTypeSalary,
			Amount: money("1500.00"),
			Disbursements: []models.Disbursement{
				{ID: "d1", PayRecordID: "p1", Amount: money("1000.00")},
			},
		},
	}}

	svc := NewExportService(workers, &stubEventLister{}, &stubAttendanceMonths{}, payroll, zap.NewNop(), nil, nil)

	file, err := svc.PayLedger(context.Background(), 2025, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "pay_ledger_2025.csv", file.Filename)

	body := string(file.Payload)
	assert.Contains(t, body, "Rossi Mario")
	assert.Contains(t, body, "2025-06")
	assert.Contains(t, body, "1000.00")
	assert.Contains(t, body, "500.00")
}

func TestPayLedgerPDFRenders(t *testing.T) {
	svc := NewExportService(&stubWorkerLister{}, &stubEventLister{}, &stubAttendanceMonths{}, &stubPayLedger{}, zap.NewNop(), nil, nil)

	file, err := svc.PayLedger(context.Background(), 2025, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"))
}
