package service

import (
	"time"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

// upcomingWindowDays is the alert horizon: a deadline within this many days
// (inclusive) counts as upcoming.
const upcomingWindowDays = 30

// ClassifyExpiry classifies a deadline against an explicit reference date.
// A nil expiry resolves to unknown; a same-day expiry is upcoming, not
// expired. The function is total and never consults the ambient clock.
func ClassifyExpiry(expiry *time.Time, today time.Time) models.ExpiryClassification {
	if expiry == nil {
		return models.ExpiryClassification{Status: models.ExpiryUnknown}
	}
	days := DaysBetween(today, *expiry)
	status := models.ExpiryValid
	switch {
	case days < 0:
		status = models.ExpiryExpired
	case days <= upcomingWindowDays:
		status = models.ExpiryUpcoming
	}
	return models.ExpiryClassification{Status: status, DaysRemaining: days}
}
