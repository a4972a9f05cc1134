package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tags the sub-documents attached to an invoice bundle.
type DocumentType string

const (
	DocumentTransport DocumentType = "transport_doc"
	DocumentWasteForm DocumentType = "waste_form"
	DocumentOther     DocumentType = "other"
)

// Valid returns true when the type is a supported value.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTransport, DocumentWasteForm, DocumentOther:
		return true
	default:
		return false
	}
}

// DocumentBundle is an invoice carrying DTT / waste-form paperwork.
type DocumentBundle struct {
	ID        string          `db:"id" json:"id"`
	Number    string          `db:"number" json:"number"`
	Supplier  *string         `db:"supplier" json:"supplier,omitempty"`
	SiteID    *string         `db:"site_id" json:"site_id,omitempty"`
	IssueDate *time.Time      `db:"issue_date" json:"issue_date,omitempty"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`

	Documents []DocumentItem `db:"-" json:"documents,omitempty"`
}

// DocumentItem is one expected document inside a bundle.
type DocumentItem struct {
	ID           string       `db:"id" json:"id"`
	BundleID     string       `db:"bundle_id" json:"bundle_id"`
	Type         DocumentType `db:"type" json:"type"`
	Description  *string      `db:"description" json:"description,omitempty"`
	Received     bool         `db:"received" json:"received"`
	ReceivedDate *time.Time   `db:"received_date" json:"received_date,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// BundleFilter defines listing filters.
type BundleFilter struct {
	Search    string
	SiteID    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// BundleStatus summarises document completeness for a bundle.
type BundleStatus struct {
	Label        string `json:"label"`
	MissingCount int    `json:"missing_count"`
	TotalCount   int    `json:"total_count"`
}
