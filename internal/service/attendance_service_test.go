package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

func workRecord(workerID string, day time.Time, hours float64, opts ...func(*models.AttendanceRecord)) models.AttendanceRecord {
	rec := models.AttendanceRecord{
		WorkerID: workerID,
		Date:     day,
		Type:     models.AttendanceWork,
		Hours:    hours,
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

func typed(t models.AttendanceType) func(*models.AttendanceRecord) {
	return func(rec *models.AttendanceRecord) { rec.Type = t }
}

func atSite(siteID string) func(*models.AttendanceRecord) {
	return func(rec *models.AttendanceRecord) { rec.SiteID = strPtr(siteID) }
}

func TestMonthlySummaryImplicitAbsences(t *testing.T) {
	// September 2025 has 22 weekdays. Fill the first 14 with 8h work days,
	// leave 8 weekdays without a record.
	var records []models.AttendanceRecord
	added := 0
	for d := 1; d <= 30 && added < 14; d++ {
		day := date(2025, time.September, d)
		if IsWeekend(day) {
			continue
		}
		records = append(records, workRecord("w1", day, 8))
		added++
	}

	summary := MonthlySummary("w1", 2025, time.September, records, nil)
	assert.Equal(t, 14, summary.WorkDays)
	assert.Equal(t, 112.0, summary.WorkedHours)
	assert.Equal(t, 8, summary.AbsenceDays)
	assert.Equal(t, 0, summary.SicknessDays)
}

func TestMonthlySummaryWeekendsNeverCountAsAbsence(t *testing.T) {
	summary := MonthlySummary("w1", 2025, time.September, nil, nil)
	// All 22 weekdays are implicit absences, the 8 weekend days are not.
	assert.Equal(t, 22, summary.AbsenceDays)
}

func TestMonthlySummaryBuckets(t *testing.T) {
	records := []models.AttendanceRecord{
		workRecord("w1", date(2025, time.September, 1), 8, atSite("s1")),
		workRecord("w1", date(2025, time.September, 2), 6, atSite("s2"), func(r *models.AttendanceRecord) {
			r.RainHours = 2
			r.PermitHours = 1
		}),
		workRecord("w1", date(2025, time.September, 3), 4, atSite("s1")),
		workRecord("w1", date(2025, time.September, 4), 0, typed(models.AttendanceSickness)),
		workRecord("w1", date(2025, time.September, 5), 0, typed(models.AttendanceVacation)),
		workRecord("w1", date(2025, time.September, 8), 0, typed(models.AttendanceHoliday)),
		workRecord("w1", date(2025, time.September, 9), 0, typed(models.AttendanceAbsence)),
		workRecord("w1", date(2025, time.September, 10), 0, typed(models.AttendanceRain), func(r *models.AttendanceRecord) {
			r.RainHours = 8
		}),
	}

	summary := MonthlySummary("w1", 2025, time.September, records, nil)
	assert.Equal(t, 3, summary.WorkDays)
	assert.Equal(t, 18.0, summary.WorkedHours)
	assert.Equal(t, 1, summary.SicknessDays)
	assert.Equal(t, 1, summary.VacationDays)
	assert.Equal(t, 1, summary.HolidayDays)
	assert.Equal(t, 10.0, summary.RainHours)
	assert.Equal(t, 1.0, summary.PermitHours)
	assert.Equal(t, 12.0, summary.SiteHours["s1"])
	assert.Equal(t, 6.0, summary.SiteHours["s2"])
	// 8 recorded days leave 14 weekdays implicitly absent plus 1 explicit.
	assert.Equal(t, 15, summary.AbsenceDays)
}

func TestMonthlySummaryStopsAtTerminationCutoff(t *testing.T) {
	records := []models.AttendanceRecord{
		workRecord("w1", date(2025, time.September, 10), 8),
		workRecord("w1", date(2025, time.September, 16), 8), // at/after cutoff, ignored
	}
	events := []models.UnilavEvent{
		event("a", "w1", models.UnilavHire, date(2024, time.January, 1)),
		event("b", "w1", models.UnilavTermination, date(2025, time.September, 15)),
	}

	summary := MonthlySummary("w1", 2025, time.September, records, events)
	assert.Equal(t, 1, summary.WorkDays)
	assert.Equal(t, 8.0, summary.WorkedHours)
	// Weekdays Sep 1..12 minus the one worked day: 9 implicit absences.
	// Nothing from the 15th on counts, not even as absence.
	assert.Equal(t, 9, summary.AbsenceDays)
}

func TestMonthlySummaryIgnoresOtherWorkers(t *testing.T) {
	records := []models.AttendanceRecord{
		workRecord("w2", date(2025, time.September, 1), 8),
	}
	summary := MonthlySummary("w1", 2025, time.September, records, nil)
	assert.Equal(t, 0, summary.WorkDays)
	assert.Equal(t, 22, summary.AbsenceDays)
}
