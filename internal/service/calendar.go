package service

import "time"

// NormalizeDate strips the time of day so comparisons work on calendar dates
// in local civil time rather than UTC-shifted instants.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole-day distance from one civil date to another.
// Time of day and location are ignored, so the result is stable across DST
// transitions.
func DaysBetween(from, to time.Time) int {
	return civilDays(to) - civilDays(from)
}

func civilDays(t time.Time) int {
	u := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(u.Unix() / 86400)
}

// sameCivilDay reports whether two instants fall on the same calendar date.
func sameCivilDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// EasterSunday computes Gregorian Easter for the given year using the
// anonymous Gregorian algorithm.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// fixedHolidays are the Italian national holidays with a fixed month/day.
var fixedHolidays = [...][2]int{
	{1, 1},   // Capodanno
	{1, 6},   // Epifania
	{4, 25},  // Liberazione
	{5, 1},   // Festa del Lavoro
	{6, 2},   // Festa della Repubblica
	{8, 15},  // Ferragosto
	{11, 1},  // Ognissanti
	{12, 8},  // Immacolata
	{12, 25}, // Natale
	{12, 26}, // Santo Stefano
}

// IsPublicHoliday reports whether the date is an Italian national holiday,
// including Easter Sunday and Easter Monday. Regional and patronal holidays
// are not supported.
func IsPublicHoliday(date time.Time) bool {
	for _, md := range fixedHolidays {
		if int(date.Month()) == md[0] && date.Day() == md[1] {
			return true
		}
	}
	easter := EasterSunday(date.Year())
	if sameCivilDay(date, easter) {
		return true
	}
	return sameCivilDay(date, easter.AddDate(0, 0, 1))
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
