package models

import "time"

// UnilavEventKind is the kind of a mandatory employment communication.
type UnilavEventKind string

const (
	UnilavHire           UnilavEventKind = "hire"
	UnilavSiteTransfer   UnilavEventKind = "site_transfer"
	UnilavLevelTransfer  UnilavEventKind = "level_transfer"
	UnilavTermination    UnilavEventKind = "termination"
	UnilavContractChange UnilavEventKind = "contract_change"
	UnilavSecondment     UnilavEventKind = "secondment"
	UnilavExtension      UnilavEventKind = "extension"
	UnilavScheduleChange UnilavEventKind = "schedule_change"
)

// Valid returns true when the kind is a supported value.
func (k UnilavEventKind) Valid() bool {
	switch k {
	case UnilavHire, UnilavSiteTransfer, UnilavLevelTransfer, UnilavTermination,
		UnilavContractChange, UnilavSecondment, UnilavExtension, UnilavScheduleChange:
		return true
	default:
		return false
	}
}

// ContractType distinguishes fixed-term from open-ended employment.
type ContractType string

const (
	ContractFixedTerm ContractType = "fixed_term"
	ContractOpenEnded ContractType = "open_ended"
)

// Valid returns true when the contract type is a supported value.
func (t ContractType) Valid() bool {
	return t == ContractFixedTerm || t == ContractOpenEnded
}

// UnilavEvent is one employment event in a worker's history. The record with
// the latest start date still in effect on a reference date is authoritative.
type UnilavEvent struct {
	ID           string          `db:"id" json:"id"`
	WorkerID     string          `db:"worker_id" json:"worker_id"`
	Kind         UnilavEventKind `db:"kind" json:"kind"`
	StartDate    time.Time       `db:"start_date" json:"start_date"`
	EndDate      *time.Time      `db:"end_date" json:"end_date,omitempty"`
	SiteID       *string         `db:"site_id" json:"site_id,omitempty"`
	ContractType ContractType    `db:"contract_type" json:"contract_type"`
	Level        *string         `db:"level" json:"level,omitempty"`
	Schedule     *string         `db:"schedule" json:"schedule,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// EffectiveEnd returns the end date that actually bounds the event. Open-ended
// contracts carry no end date even when a stale value was persisted; secondment
// is the exception because a secondment always has a return date.
func (e UnilavEvent) EffectiveEnd() *time.Time {
	if e.ContractType == ContractOpenEnded && e.Kind != UnilavSecondment {
		return nil
	}
	return e.EndDate
}
