package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayType distinguishes payroll entries for the same worker and month.
type PayType string

const (
	PayTypeSalary     PayType = "salary"
	PayTypeBonus      PayType = "bonus"
	PayTypeThirteenth PayType = "thirteenth"
	PayTypeSeverance  PayType = "severance"
)

// Valid returns true when the pay type is a supported value.
func (t PayType) Valid() bool {
	switch t {
	case PayTypeSalary, PayTypeBonus, PayTypeThirteenth, PayTypeSeverance:
		return true
	default:
		return false
	}
}

// PayRecord is one (worker, month, year, type) payroll entry.
type PayRecord struct {
	ID        string          `db:"id" json:"id"`
	WorkerID  string          `db:"worker_id" json:"worker_id"`
	Year      int             `db:"year" json:"year"`
	Month     int             `db:"month" json:"month"`
	Type      PayType         `db:"type" json:"type"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Notes     *string         `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`

	Disbursements []Disbursement `db:"-" json:"disbursements,omitempty"`
}

// Disbursement is a partial payment against a pay record.
type Disbursement struct {
	ID          string          `db:"id" json:"id"`
	PayRecordID string          `db:"pay_record_id" json:"pay_record_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Date        time.Time       `db:"date" json:"date"`
	Method      *string         `db:"method" json:"method,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// PayBalance is the derived disbursed/residual pair for a pay record.
// Residual may be negative when a record was over-disbursed.
type PayBalance struct {
	Disbursed decimal.Decimal `json:"disbursed"`
	Residual  decimal.Decimal `json:"residual"`
}
