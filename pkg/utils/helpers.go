package utils

import (
	"fmt"
	"time"
)

// ISODate is the calendar date layout used on the wire (YYYY-MM-DD)
const ISODate = "2006-01-02"

// ParseDate parses an ISO calendar date into UTC midnight
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODate, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// FormatDate renders a time as an ISO calendar date
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// AddDays advances a date by n calendar days
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the fractional number of days from one instant to another
func DaysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}
