package services

import (
	"errors"
	"testing"
	"time"

	"rental-backend/models"
)

var satSun = map[time.Weekday]bool{time.Saturday: true, time.Sunday: true}

func TestQuoteTotalNightlyRates(t *testing.T) {
	// Nights Thu, Fri, Sat: two weekdays plus one weekend night.
	r := mustRange(t, "2024-03-07", "2024-03-10")
	total, err := QuoteTotal(r, 100, 120, 0, nil, satSun, 28)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if total != 320 {
		t.Fatalf("total = %v, want 320", total)
	}
}

func TestQuoteTotalExcludesCheckoutDay(t *testing.T) {
	// Mon check-in, Wed check-out: 2 priced nights.
	r := mustRange(t, "2024-03-04", "2024-03-06")
	total, err := QuoteTotal(r, 80, 100, 0, nil, satSun, 28)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if total != 160 {
		t.Fatalf("total = %v, want 160", total)
	}
}

func TestQuoteTotalAppliesOverride(t *testing.T) {
	r := mustRange(t, "2024-03-04", "2024-03-06")
	overrides := map[string]float64{"2024-03-05": 55}
	total, err := QuoteTotal(r, 80, 100, 0, overrides, satSun, 28)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if total != 135 {
		t.Fatalf("total = %v, want 135 (80 + override 55)", total)
	}
}

func TestQuoteTotalMonthlyThreshold(t *testing.T) {
	r := mustRange(t, "2024-03-01", "2024-03-31") // 30 nights
	total, err := QuoteTotal(r, 80, 100, 1500, nil, satSun, 28)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if total != 1500 {
		t.Fatalf("total = %v, want flat monthly 1500", total)
	}
}

func TestQuoteTotalIncompleteRates(t *testing.T) {
	r := mustRange(t, "2024-03-04", "2024-03-06")
	if _, err := QuoteTotal(r, 0, 0, 0, nil, satSun, 28); !errors.Is(err, ErrIncompleteRate) {
		t.Fatalf("expected ErrIncompleteRate for missing nightly rate, got %v", err)
	}

	long := mustRange(t, "2024-03-01", "2024-03-31")
	if _, err := QuoteTotal(long, 80, 100, 0, nil, satSun, 28); !errors.Is(err, ErrIncompleteRate) {
		t.Fatalf("expected ErrIncompleteRate for missing monthly rate, got %v", err)
	}

	// Overrides can carry a night the rates cannot.
	short, _ := models.NewDateRange(day(t, "2024-03-04"), day(t, "2024-03-05"))
	total, err := QuoteTotal(short, 0, 0, 0, map[string]float64{"2024-03-04": 70}, satSun, 28)
	if err != nil {
		t.Fatalf("override-only quote: %v", err)
	}
	if total != 70 {
		t.Fatalf("total = %v, want 70", total)
	}
}

func TestSeasonTotal(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"2024-01-01", "2024-01-15", 1500}, // under a month, minimum applies
		{"2024-01-01", "2024-03-01", 3000}, // 60 nights = 2 months
		{"2024-01-01", "2024-04-10", 6000}, // 100 nights = 4 started months
	}
	for _, tc := range cases {
		total, err := SeasonTotal(1500, mustRange(t, tc.start, tc.end))
		if err != nil {
			t.Fatalf("season total %s..%s: %v", tc.start, tc.end, err)
		}
		if total != tc.want {
			t.Fatalf("season total %s..%s = %v, want %v", tc.start, tc.end, total, tc.want)
		}
	}

	if _, err := SeasonTotal(0, mustRange(t, "2024-01-01", "2024-03-01")); !errors.Is(err, ErrIncompleteRate) {
		t.Fatalf("expected ErrIncompleteRate, got %v", err)
	}
}

func TestServiceQuoteLoadsOverrides(t *testing.T) {
	db := newTestDB(t)
	pricing := NewPricingService(db)
	property := createProperty(t, db, models.Property{Name: "P1", WeekdayRate: 80, WeekendRate: 100})

	if err := pricing.SetOverride(property.ID, day(t, "2024-03-05"), 55); err != nil {
		t.Fatalf("set override: %v", err)
	}

	total, err := pricing.Quote(property, mustRange(t, "2024-03-04", "2024-03-06"))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if total != 135 {
		t.Fatalf("total = %v, want 135", total)
	}

	// Upsert replaces, never duplicates.
	if err := pricing.SetOverride(property.ID, day(t, "2024-03-05"), 60); err != nil {
		t.Fatalf("update override: %v", err)
	}
	total, err = pricing.Quote(property, mustRange(t, "2024-03-04", "2024-03-06"))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if total != 140 {
		t.Fatalf("total after upsert = %v, want 140", total)
	}

	if err := pricing.RemoveOverride(property.ID, day(t, "2024-03-05")); err != nil {
		t.Fatalf("remove override: %v", err)
	}
	total, err = pricing.Quote(property, mustRange(t, "2024-03-04", "2024-03-06"))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if total != 160 {
		t.Fatalf("total after removal = %v, want 160", total)
	}
}

func TestParseWeekendDays(t *testing.T) {
	got := parseWeekendDays("Friday, Saturday")
	if !got[time.Friday] || !got[time.Saturday] || got[time.Sunday] {
		t.Fatalf("parsed weekend days wrong: %v", got)
	}

	got = parseWeekendDays("not a day")
	if !got[time.Saturday] || !got[time.Sunday] {
		t.Fatalf("fallback weekend days wrong: %v", got)
	}
}
