package models

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", s, err)
	}
	return d
}

func TestNewDateRangeRejectsInverted(t *testing.T) {
	_, err := NewDateRange(day(t, "2024-06-05"), day(t, "2024-06-01"))
	if err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestNewDateRangeTruncatesToDays(t *testing.T) {
	start := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	r, err := NewDateRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Start.Equal(day(t, "2024-06-01")) || !r.End.Equal(day(t, "2024-06-03")) {
		t.Fatalf("range not truncated to days: %v .. %v", r.Start, r.End)
	}
}

func TestDaysEnumeration(t *testing.T) {
	r, err := NewDateRange(day(t, "2024-06-01"), day(t, "2024-06-05"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := r.Days()
	if len(days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(days))
	}
	for i := 1; i < len(days); i++ {
		if !days[i].After(days[i-1]) {
			t.Fatalf("days not ascending at index %d: %v then %v", i, days[i-1], days[i])
		}
	}
	if !days[0].Equal(r.Start) || !days[len(days)-1].Equal(r.End) {
		t.Fatalf("days do not span the range: %v .. %v", days[0], days[len(days)-1])
	}
}

func TestDaysSingleDay(t *testing.T) {
	r, _ := NewDateRange(day(t, "2024-06-01"), day(t, "2024-06-01"))
	if got := len(r.Days()); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if r.Nights() != 0 {
		t.Fatalf("expected 0 nights, got %d", r.Nights())
	}
}

func TestNights(t *testing.T) {
	r, _ := NewDateRange(day(t, "2024-03-04"), day(t, "2024-03-06"))
	if r.Nights() != 2 {
		t.Fatalf("expected 2 nights, got %d", r.Nights())
	}
}

func TestOverlaps(t *testing.T) {
	a, _ := NewDateRange(day(t, "2024-06-01"), day(t, "2024-06-05"))
	b, _ := NewDateRange(day(t, "2024-06-05"), day(t, "2024-06-08"))
	c, _ := NewDateRange(day(t, "2024-06-06"), day(t, "2024-06-08"))

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatal("ranges sharing an endpoint must overlap")
	}
	if a.Overlaps(c) || c.Overlaps(a) {
		t.Fatal("disjoint ranges must not overlap")
	}
}
