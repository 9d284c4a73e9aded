package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityService owns the blocked_dates ledger: one row per
// (property, day), tagged with the provenance that created it.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// IsRangeFree reports whether no day of the range is blocked for the
// property, regardless of provenance.
func (s *AvailabilityService) IsRangeFree(propertyID uint, r models.DateRange) (bool, error) {
	days, err := s.conflictingDays(s.DB, propertyID, r)
	if err != nil {
		return false, err
	}
	return len(days) == 0, nil
}

// Block inserts one entry per day in the range. Days that are already
// blocked are left untouched; duplicates are never an error.
func (s *AvailabilityService) Block(propertyID uint, r models.DateRange, provenance string) error {
	_, err := s.block(s.DB, propertyID, r, provenance)
	return err
}

// Unblock removes the days of the range that carry the given provenance.
// Days blocked by another source stay blocked.
func (s *AvailabilityService) Unblock(propertyID uint, r models.DateRange, provenance string) error {
	return s.unblock(s.DB, propertyID, r, provenance)
}

// ListBlocked returns the blocked rows for the property between the two
// days inclusive, ordered by date.
func (s *AvailabilityService) ListBlocked(propertyID uint, from, to time.Time) ([]models.BlockedDate, error) {
	var rows []models.BlockedDate
	err := s.DB.
		Where("property_id = ? AND date >= ? AND date <= ?", propertyID, models.DayOf(from), models.DayOf(to)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	return rows, nil
}

// ListAllBlocked returns every blocked row for the property, ordered by date.
func (s *AvailabilityService) ListAllBlocked(propertyID uint) ([]models.BlockedDate, error) {
	var rows []models.BlockedDate
	err := s.DB.
		Where("property_id = ?", propertyID).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	return rows, nil
}

func (s *AvailabilityService) conflictingDays(tx *gorm.DB, propertyID uint, r models.DateRange) ([]time.Time, error) {
	var days []time.Time
	err := tx.Model(&models.BlockedDate{}).
		Where("property_id = ? AND date >= ? AND date <= ?", propertyID, r.Start, r.End).
		Order("date ASC").
		Pluck("date", &days).Error
	if err != nil {
		return nil, fmt.Errorf("query blocked dates: %w", err)
	}
	return days, nil
}

// block absorbs already-blocked days via ON CONFLICT DO NOTHING and reports
// how many rows were actually inserted.
func (s *AvailabilityService) block(tx *gorm.DB, propertyID uint, r models.DateRange, provenance string) (int64, error) {
	rows := blockedRows(propertyID, r, provenance)
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("insert blocked dates: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// blockStrict inserts without conflict absorption, so a racing writer for
// the same (property, day) surfaces a duplicate-key error instead of
// silently sharing the day. Used by the confirm protocol.
func (s *AvailabilityService) blockStrict(tx *gorm.DB, propertyID uint, r models.DateRange, provenance string) error {
	rows := blockedRows(propertyID, r, provenance)
	if err := tx.Create(&rows).Error; err != nil {
		return err
	}
	return nil
}

func (s *AvailabilityService) unblock(tx *gorm.DB, propertyID uint, r models.DateRange, provenance string) error {
	err := tx.
		Where("property_id = ? AND date >= ? AND date <= ? AND provenance = ?", propertyID, r.Start, r.End, provenance).
		Delete(&models.BlockedDate{}).Error
	if err != nil {
		return fmt.Errorf("delete blocked dates: %w", err)
	}
	return nil
}

func blockedRows(propertyID uint, r models.DateRange, provenance string) []models.BlockedDate {
	days := r.Days()
	rows := make([]models.BlockedDate, 0, len(days))
	for _, day := range days {
		rows = append(rows, models.BlockedDate{
			PropertyID: propertyID,
			Date:       day,
			Provenance: provenance,
		})
	}
	return rows
}

// isDuplicateEntry recognizes a unique-index violation from MySQL (1062) or,
// as a fallback, from the driver-agnostic message text.
func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
