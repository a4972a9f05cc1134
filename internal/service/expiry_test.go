package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
)

func TestClassifyExpirySameDayIsUpcoming(t *testing.T) {
	today := date(2025, time.June, 10)
	expiry := today
	got := ClassifyExpiry(&expiry, today)
	assert.Equal(t, models.ExpiryUpcoming, got.Status)
	assert.Equal(t, 0, got.DaysRemaining)
}

func TestClassifyExpiryYesterdayIsExpired(t *testing.T) {
	today := date(2025, time.June, 10)
	expiry := today.AddDate(0, 0, -1)
	got := ClassifyExpiry(&expiry, today)
	assert.Equal(t, models.ExpiryExpired, got.Status)
	assert.Equal(t, -1, got.DaysRemaining)
}

func TestClassifyExpiryNilIsUnknown(t *testing.T) {
	got := ClassifyExpiry(nil, date(2025, time.June, 10))
	assert.Equal(t, models.ExpiryUnknown, got.Status)
}

func TestClassifyExpiryWindowBoundary(t *testing.T) {
	today := date(2025, time.June, 10)

	at30 := today.AddDate(0, 0, 30)
	got := ClassifyExpiry(&at30, today)
	assert.Equal(t, models.ExpiryUpcoming, got.Status)
	assert.Equal(t, 30, got.DaysRemaining)

	at31 := today.AddDate(0, 0, 31)
	got = ClassifyExpiry(&at31, today)
	assert.Equal(t, models.ExpiryValid, got.Status)
	assert.Equal(t, 31, got.DaysRemaining)
}

func TestClassifyExpiryIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2025, time.June, 10, 23, 30, 0, 0, time.UTC)
	expiry := time.Date(2025, time.June, 11, 0, 15, 0, 0, time.UTC)
	got := ClassifyExpiry(&expiry, today)
	assert.Equal(t, 1, got.DaysRemaining)
	assert.Equal(t, models.ExpiryUpcoming, got.Status)
}
