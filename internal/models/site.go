package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SiteStatus tracks the lifecycle of a work site.
type SiteStatus string

const (
	SiteStatusPlanned    SiteStatus = "planned"
	SiteStatusInProgress SiteStatus = "in_progress"
	SiteStatusSuspended  SiteStatus = "suspended"
	SiteStatusCompleted  SiteStatus = "completed"
	SiteStatusCancelled  SiteStatus = "cancelled"
)

// Valid returns true when the status is a supported value.
func (s SiteStatus) Valid() bool {
	switch s {
	case SiteStatusPlanned, SiteStatusInProgress, SiteStatusSuspended, SiteStatusCompleted, SiteStatusCancelled:
		return true
	default:
		return false
	}
}

// Site represents a work site (cantiere) with its economic envelope.
type Site struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Address        *string         `db:"address" json:"address,omitempty"`
	Client         *string         `db:"client" json:"client,omitempty"`
	Status         SiteStatus      `db:"status" json:"status"`
	ContractAmount decimal.Decimal `db:"contract_amount" json:"contract_amount"`
	SafetyCharge   decimal.Decimal `db:"safety_charge" json:"safety_charge"`
	StartDate      *time.Time      `db:"start_date" json:"start_date,omitempty"`
	EndDate        *time.Time      `db:"end_date" json:"end_date,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// WorksAmount is the contract amount net of the safety charge.
func (s Site) WorksAmount() decimal.Decimal {
	return s.ContractAmount.Sub(s.SafetyCharge)
}

// SiteFilter defines listing filters.
type SiteFilter struct {
	Search    string
	Status    *SiteStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
