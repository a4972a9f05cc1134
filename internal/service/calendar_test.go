package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEasterSundayKnownDates(t *testing.T) {
	cases := map[int]time.Time{
		2024: date(2024, time.March, 31),
		2025: date(2025, time.April, 20),
		2026: date(2026, time.April, 5),
		2038: date(2038, time.April, 25),
	}
	for year, want := range cases {
		assert.Equal(t, want, EasterSunday(year), "easter %d", year)
	}
}

func TestIsPublicHolidayFixedDates(t *testing.T) {
	holidays := []time.Time{
		date(2025, time.January, 1),
		date(2025, time.January, 6),
		date(2025, time.April, 25),
		date(2025, time.May, 1),
		date(2025, time.June, 2),
		date(2025, time.August, 15),
		date(2025, time.November, 1),
		date(2025, time.December, 8),
		date(2025, time.December, 25),
		date(2025, time.December, 26),
	}
	for _, day := range holidays {
		assert.True(t, IsPublicHoliday(day), "expected holiday %s", day.Format("2006-01-02"))
	}
	assert.False(t, IsPublicHoliday(date(2025, time.July, 14)))
}

func TestIsPublicHolidayEaster(t *testing.T) {
	assert.True(t, IsPublicHoliday(date(2025, time.April, 20)))
	assert.True(t, IsPublicHoliday(date(2025, time.April, 21)))
	assert.False(t, IsPublicHoliday(date(2025, time.April, 22)))

	assert.True(t, IsPublicHoliday(date(2024, time.March, 31)))
	assert.True(t, IsPublicHoliday(date(2024, time.April, 1)))
}

func TestNormalizeDateKeepsLocation(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	stamped := time.Date(2025, time.March, 30, 23, 45, 0, 0, rome)
	normalized := NormalizeDate(stamped)
	assert.Equal(t, 0, normalized.Hour())
	assert.Equal(t, stamped.Day(), normalized.Day())
	assert.Equal(t, rome, normalized.Location())
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 2025-03-30 is the spring-forward date in Italy: the civil day is 23
	// hours long, but the day distance must still be exact.
	before := time.Date(2025, time.March, 29, 12, 0, 0, 0, rome)
	after := time.Date(2025, time.March, 31, 1, 0, 0, 0, rome)
	assert.Equal(t, 2, DaysBetween(before, after))
	assert.Equal(t, -2, DaysBetween(after, before))
}

func TestDaysBetweenLeapYear(t *testing.T) {
	assert.Equal(t, 2, DaysBetween(date(2024, time.February, 28), date(2024, time.March, 1)))
	assert.Equal(t, 1, DaysBetween(date(2025, time.February, 28), date(2025, time.March, 1)))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(2025, time.August, 30)))  // Saturday
	assert.True(t, IsWeekend(date(2025, time.August, 31)))  // Sunday
	assert.False(t, IsWeekend(date(2025, time.September, 1)))
}
