package models

// ExpiryStatus classifies a deadline relative to a reference date.
type ExpiryStatus string

const (
	ExpiryUnknown  ExpiryStatus = "unknown"
	ExpiryExpired  ExpiryStatus = "expired"
	ExpiryUpcoming ExpiryStatus = "upcoming"
	ExpiryValid    ExpiryStatus = "valid"
)

// ExpiryClassification pairs the status with the signed day distance.
// DaysRemaining is meaningless when Status is ExpiryUnknown.
type ExpiryClassification struct {
	Status        ExpiryStatus `json:"status"`
	DaysRemaining int          `json:"days_remaining"`
}
