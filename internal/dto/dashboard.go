package dto

import "github.com/Fodapt/marrelsrl-sub002/internal/models"

// ExpiryItem is one deadline entry on the expiry dashboard.
type ExpiryItem struct {
	ID            string              `json:"id"`
	WorkerID      string              `json:"worker_id,omitempty"`
	Label         string              `json:"label"`
	ExpiryDate    string              `json:"expiry_date"`
	DaysRemaining int                 `json:"days_remaining"`
	Status        models.ExpiryStatus `json:"status"`
}

// ExpirySection groups dashboard items of one kind by urgency.
type ExpirySection struct {
	Expired  []ExpiryItem `json:"expired"`
	Upcoming []ExpiryItem `json:"upcoming"`
}

// ExpiryTotals carries the headline counters.
type ExpiryTotals struct {
	Expired  int `json:"expired"`
	Upcoming int `json:"upcoming"`
}

// ExpiryDashboardResponse is the full deadline overview for a reference date.
type ExpiryDashboardResponse struct {
	ReferenceDate  string        `json:"reference_date"`
	Certifications ExpirySection `json:"certifications"`
	Contracts      ExpirySection `json:"contracts"`
	Sites          ExpirySection `json:"sites"`
	Totals         ExpiryTotals  `json:"totals"`
}
