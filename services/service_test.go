package services

import (
	"errors"
	"testing"
	"time"

	"rental-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// One in-memory database per test; keep every session on the same
	// connection so they all see it.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.Property{},
		&models.Reservation{},
		&models.BlockedDate{},
		&models.PriceOverride{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustParse(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", s, err)
	}
	return d
}

func mustRange(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	r, err := models.NewDateRange(day(t, start), day(t, end))
	if err != nil {
		t.Fatalf("range %s..%s: %v", start, end, err)
	}
	return r
}

func createProperty(t *testing.T, db *gorm.DB, p models.Property) models.Property {
	t.Helper()
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create property: %v", err)
	}
	return p
}

func blockedDayStrings(t *testing.T, rows []models.BlockedDate) []string {
	t.Helper()
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Date.Format("2006-01-02"))
	}
	return out
}

// failingLedger wraps the real ledger and lets tests break single steps of
// the lifecycle protocols.
type failingLedger struct {
	inner        *AvailabilityService
	failBlock    bool
	failUnblock  bool
	hideConflict bool
}

var errStorageDown = errors.New("storage down")

func (f *failingLedger) conflictingDays(tx *gorm.DB, propertyID uint, r models.DateRange) ([]time.Time, error) {
	if f.hideConflict {
		return nil, nil
	}
	return f.inner.conflictingDays(tx, propertyID, r)
}

func (f *failingLedger) blockStrict(tx *gorm.DB, propertyID uint, r models.DateRange, provenance string) error {
	if f.failBlock {
		return errStorageDown
	}
	return f.inner.blockStrict(tx, propertyID, r, provenance)
}

func (f *failingLedger) unblock(tx *gorm.DB, propertyID uint, r models.DateRange, provenance string) error {
	if f.failUnblock {
		return errStorageDown
	}
	return f.inner.unblock(tx, propertyID, r, provenance)
}
