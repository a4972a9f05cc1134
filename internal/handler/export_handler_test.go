package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	"github.com/Fodapt/marrelsrl-sub002/internal/service"
)

type fakeWorkerLister struct{ workers []models.Worker }

func (f *fakeWorkerLister) ListAll(context.Context) ([]models.Worker, error) {
	return f.workers, nil
}

type fakeEventLister struct{ events []models.UnilavEvent }

func (f *fakeEventLister) ListAll(context.Context) ([]models.UnilavEvent, error) {
	return f.events, nil
}

type fakeAttendanceMonths struct{ records []models.AttendanceRecord }

func (f *fakeAttendanceMonths) ListForMonth(context.Context, int, time.Month) ([]models.AttendanceRecord, error) {
	return f.records, nil
}

type fakePayLedger struct{ records []models.PayRecord }

func (f *fakePayLedger) ListByYear(context.Context, int) ([]models.PayRecord, error) {
	return f.records, nil
}

func newTestExportService() *service.ExportService {
	return service.NewExportService(
		&fakeWorkerLister{workers: []models.Worker{{ID: "w1", FirstName: "Mario", LastName: "Rossi", Role: models.RoleSiteWorker}}},
		&fakeEventLister{},
		&fakeAttendanceMonths{},
		&fakePayLedger{},
		nil, nil, nil,
	)
}

func TestExportHandlerAttendanceSheetCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(newTestExportService(), true)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/attendance?year=2026&month=3", nil)

	h.AttendanceSheet(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance_2026_03.csv")
}

func TestExportHandlerRejectsUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(newTestExportService(), true)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/pay-ledger?year=2026&format=xlsx", nil)

	h.PayLedger(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandlerDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(newTestExportService(), false)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/attendance?year=2026&month=3", nil)

	h.AttendanceSheet(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
