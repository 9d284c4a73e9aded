package models

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("invalid_date_range")

// DateRange is an inclusive pair of calendar days (UTC midnight).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both ends to calendar days and rejects inverted ranges.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = DayOf(start)
	end = DayOf(end)
	if start.After(end) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{Start: start, End: end}, nil
}

// DayOf normalizes a timestamp to its calendar day at UTC midnight.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the closed intervals intersect.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Days enumerates every day from Start to End inclusive, ascending.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights()+1)
	for cur := r.Start; !cur.After(r.End); cur = cur.AddDate(0, 0, 1) {
		days = append(days, cur)
	}
	return days
}

// Nights is the count of priced nights; the last day (checkout) is not one.
func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}
