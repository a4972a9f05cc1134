package models

import "time"

// CertificationCategory separates training courses from medical visits.
type CertificationCategory string

const (
	CertificationCourse       CertificationCategory = "course"
	CertificationMedicalVisit CertificationCategory = "medical_visit"
)

// Valid returns true when the category is a supported value.
func (c CertificationCategory) Valid() bool {
	return c == CertificationCourse || c == CertificationMedicalVisit
}

// CertificationRecord tracks a worker's course or medical-visit validity.
// History is an append-only ledger: when it is non-empty the record's current
// expiry date equals the newest entry's new expiry.
type CertificationRecord struct {
	ID         string                `db:"id" json:"id"`
	WorkerID   string                `db:"worker_id" json:"worker_id"`
	Category   CertificationCategory `db:"category" json:"category"`
	Name       string                `db:"name" json:"name"`
	ExpiryDate *time.Time            `db:"expiry_date" json:"expiry_date,omitempty"`
	CreatedAt  time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time             `db:"updated_at" json:"updated_at"`

	History []CertificationRenewal `db:"-" json:"history,omitempty"`
}

// CertificationRenewal records one prior-expiry to new-expiry transition.
type CertificationRenewal struct {
	ID              string     `db:"id" json:"id"`
	CertificationID string     `db:"certification_id" json:"certification_id"`
	PreviousExpiry  *time.Time `db:"previous_expiry" json:"previous_expiry,omitempty"`
	NewExpiry       time.Time  `db:"new_expiry" json:"new_expiry"`
	RecordedAt      time.Time  `db:"recorded_at" json:"recorded_at"`
}
