package services

import (
	"reflect"
	"testing"

	"rental-backend/models"
)

func TestBlockIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ledger := NewAvailabilityService(db)
	r := mustRange(t, "2024-06-01", "2024-06-03")

	if err := ledger.Block(1, r, models.ProvenanceManual); err != nil {
		t.Fatalf("first block: %v", err)
	}
	if err := ledger.Block(1, r, models.ProvenanceManual); err != nil {
		t.Fatalf("second block must not error: %v", err)
	}

	rows, err := ledger.ListBlocked(1, day(t, "2024-06-01"), day(t, "2024-06-30"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2024-06-01", "2024-06-02", "2024-06-03"}
	if got := blockedDayStrings(t, rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("blocked days = %v, want %v", got, want)
	}
}

func TestIsRangeFreeIgnoresOtherRanges(t *testing.T) {
	db := newTestDB(t)
	ledger := NewAvailabilityService(db)

	if err := ledger.Block(1, mustRange(t, "2024-06-01", "2024-06-03"), models.ProvenanceManual); err != nil {
		t.Fatalf("block: %v", err)
	}

	free, err := ledger.IsRangeFree(1, mustRange(t, "2024-06-04", "2024-06-10"))
	if err != nil {
		t.Fatalf("isRangeFree: %v", err)
	}
	if !free {
		t.Fatal("non-overlapping range must be free")
	}

	free, err = ledger.IsRangeFree(1, mustRange(t, "2024-06-03", "2024-06-05"))
	if err != nil {
		t.Fatalf("isRangeFree: %v", err)
	}
	if free {
		t.Fatal("overlapping range must not be free")
	}
}

func TestIsRangeFreeScopedToProperty(t *testing.T) {
	db := newTestDB(t)
	ledger := NewAvailabilityService(db)
	r := mustRange(t, "2024-06-01", "2024-06-03")

	if err := ledger.Block(1, r, models.ProvenanceICal); err != nil {
		t.Fatalf("block: %v", err)
	}

	free, err := ledger.IsRangeFree(2, r)
	if err != nil {
		t.Fatalf("isRangeFree: %v", err)
	}
	if !free {
		t.Fatal("another property's calendar must be unaffected")
	}
}

func TestUnblockIsProvenanceScoped(t *testing.T) {
	db := newTestDB(t)
	ledger := NewAvailabilityService(db)

	// Owner blocked the 3rd; a booking holds the days around it.
	if err := ledger.Block(1, mustRange(t, "2024-06-03", "2024-06-03"), models.ProvenanceManual); err != nil {
		t.Fatalf("manual block: %v", err)
	}
	if err := ledger.blockStrict(db, 1, mustRange(t, "2024-06-01", "2024-06-02"), models.ProvenanceBooking); err != nil {
		t.Fatalf("booking block: %v", err)
	}
	if err := ledger.blockStrict(db, 1, mustRange(t, "2024-06-04", "2024-06-05"), models.ProvenanceBooking); err != nil {
		t.Fatalf("booking block: %v", err)
	}

	// Freeing the whole span with booking provenance must keep the manual day.
	if err := ledger.Unblock(1, mustRange(t, "2024-06-01", "2024-06-05"), models.ProvenanceBooking); err != nil {
		t.Fatalf("unblock: %v", err)
	}

	rows, err := ledger.ListBlocked(1, day(t, "2024-06-01"), day(t, "2024-06-30"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := blockedDayStrings(t, rows); !reflect.DeepEqual(got, []string{"2024-06-03"}) {
		t.Fatalf("blocked days after unblock = %v, want just the manual day", got)
	}
	if rows[0].Provenance != models.ProvenanceManual {
		t.Fatalf("surviving day has provenance %q, want manual", rows[0].Provenance)
	}
}

func TestBlockStrictRejectsDuplicateDay(t *testing.T) {
	db := newTestDB(t)
	ledger := NewAvailabilityService(db)
	r := mustRange(t, "2024-06-01", "2024-06-02")

	if err := ledger.blockStrict(db, 1, r, models.ProvenanceBooking); err != nil {
		t.Fatalf("first strict block: %v", err)
	}
	err := ledger.blockStrict(db, 1, r, models.ProvenanceManual)
	if err == nil {
		t.Fatal("second strict block for the same days must fail")
	}
	if !isDuplicateEntry(err) {
		t.Fatalf("expected duplicate-entry error, got %v", err)
	}
}

func TestListBlockedWindow(t *testing.T) {
	db := newTestDB(t)
	ledger := NewAvailabilityService(db)

	if err := ledger.Block(1, mustRange(t, "2024-06-01", "2024-06-10"), models.ProvenanceICal); err != nil {
		t.Fatalf("block: %v", err)
	}

	rows, err := ledger.ListBlocked(1, day(t, "2024-06-04"), day(t, "2024-06-06"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2024-06-04", "2024-06-05", "2024-06-06"}
	if got := blockedDayStrings(t, rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("windowed list = %v, want %v", got, want)
	}
}

func TestValidateCandidateReportsConflictingDays(t *testing.T) {
	db := newTestDB(t)
	ledger := NewAvailabilityService(db)
	query := NewAvailabilityQuery(ledger)

	if err := ledger.Block(1, mustRange(t, "2024-06-03", "2024-06-04"), models.ProvenanceManual); err != nil {
		t.Fatalf("block: %v", err)
	}

	result, err := query.ValidateCandidate(1, mustRange(t, "2024-06-01", "2024-06-05"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Free {
		t.Fatal("range over blocked days must not be free")
	}
	if len(result.ConflictingDays) != 2 {
		t.Fatalf("expected 2 conflicting days, got %d", len(result.ConflictingDays))
	}

	result, err = query.ValidateCandidate(1, mustRange(t, "2024-06-05", "2024-06-08"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Free || len(result.ConflictingDays) != 0 {
		t.Fatalf("free range misreported: %+v", result)
	}
}
