package models

import "time"

// AttendanceType tags the nature of a worker's day.
type AttendanceType string

const (
	AttendanceWork     AttendanceType = "work"
	AttendanceSickness AttendanceType = "sickness"
	AttendanceVacation AttendanceType = "vacation"
	AttendanceHoliday  AttendanceType = "holiday"
	AttendanceAbsence  AttendanceType = "absence"
	AttendanceRain     AttendanceType = "rain"
)

// Valid returns true when the type is a supported value.
func (t AttendanceType) Valid() bool {
	switch t {
	case AttendanceWork, AttendanceSickness, AttendanceVacation, AttendanceHoliday, AttendanceAbsence, AttendanceRain:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one worker-day entry on the attendance sheet.
type AttendanceRecord struct {
	ID          string         `db:"id" json:"id"`
	WorkerID    string         `db:"worker_id" json:"worker_id"`
	Date        time.Time      `db:"date" json:"date"`
	Type        AttendanceType `db:"type" json:"type"`
	Hours       float64        `db:"hours" json:"hours"`
	RainHours   float64        `db:"rain_hours" json:"rain_hours"`
	PermitHours float64        `db:"permit_hours" json:"permit_hours"`
	SiteID      *string        `db:"site_id" json:"site_id,omitempty"`
	Notes       *string        `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// AttendanceSummary aggregates one worker's month.
type AttendanceSummary struct {
	WorkerID     string             `json:"worker_id"`
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	WorkDays     int                `json:"work_days"`
	WorkedHours  float64            `json:"worked_hours"`
	SicknessDays int                `json:"sickness_days"`
	VacationDays int                `json:"vacation_days"`
	HolidayDays  int                `json:"holiday_days"`
	AbsenceDays  int                `json:"absence_days"`
	RainHours    float64            `json:"rain_hours"`
	PermitHours  float64            `json:"permit_hours"`
	SiteHours    map[string]float64 `json:"site_hours"`
}
