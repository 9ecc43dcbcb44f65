package schedule

import (
	"fmt"
	"strconv"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes from midnight to an "HH:MM" string.
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// AddMinutes advances a minute-of-day value, clamped within the same day.
func AddMinutes(minute, delta int) int {
	out := minute + delta
	if out < 0 {
		return 0
	}
	if out > MinutesPerDay {
		return MinutesPerDay
	}
	return out
}

// ParseDate parses a "YYYY-MM-DD" date in the given location. The location
// is always the tenant's pinned timezone, never the server's ambient one.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return day, nil
}

// FormatDate renders a time as a "YYYY-MM-DD" date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// MinuteOfDay returns the minutes elapsed since midnight of t in its location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// SameDate reports whether two times fall on the same calendar date in the
// location of a.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
