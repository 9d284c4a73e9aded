package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultMonthlyThresholdNights = 28
	seasonMonthDays               = 30
)

// PricingService quotes a total for a date range from the property's
// weekday/weekend/monthly rates plus per-date overrides. It is a calculator;
// it never writes reservation or ledger state.
type PricingService struct {
	DB                     *gorm.DB
	WeekendDays            map[time.Weekday]bool
	MonthlyThresholdNights int
}

// NewPricingService reads PRICING_WEEKEND_DAYS (comma-separated weekday
// names, default "Saturday,Sunday") and PRICING_MONTHLY_THRESHOLD (nights).
func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{
		DB:                     db,
		WeekendDays:            parseWeekendDays(utils.EnvOrDefault("PRICING_WEEKEND_DAYS", "Saturday,Sunday")),
		MonthlyThresholdNights: parseThreshold(utils.EnvOrDefault("PRICING_MONTHLY_THRESHOLD", "")),
	}
}

// Quote loads the property's overrides for the range and computes the total
// for a nightly stay.
func (s *PricingService) Quote(property models.Property, r models.DateRange) (float64, error) {
	overrides, err := s.overridesFor(property.ID, r)
	if err != nil {
		return 0, err
	}
	return QuoteTotal(r, property.WeekdayRate, property.WeekendRate, property.MonthlyRate,
		overrides, s.WeekendDays, s.MonthlyThresholdNights)
}

// SetOverride upserts the nightly price for one exact date.
func (s *PricingService) SetOverride(propertyID uint, date time.Time, price float64) error {
	row := models.PriceOverride{
		PropertyID: propertyID,
		Date:       models.DayOf(date),
		Price:      price,
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "property_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save price override: %w", err)
	}
	return nil
}

// RemoveOverride deletes the override for one exact date, if any.
func (s *PricingService) RemoveOverride(propertyID uint, date time.Time) error {
	err := s.DB.
		Where("property_id = ? AND date = ?", propertyID, models.DayOf(date)).
		Delete(&models.PriceOverride{}).Error
	if err != nil {
		return fmt.Errorf("delete price override: %w", err)
	}
	return nil
}

func (s *PricingService) overridesFor(propertyID uint, r models.DateRange) (map[string]float64, error) {
	var rows []models.PriceOverride
	err := s.DB.
		Where("property_id = ? AND date >= ? AND date <= ?", propertyID, r.Start, r.End).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load price overrides: %w", err)
	}
	overrides := make(map[string]float64, len(rows))
	for _, row := range rows {
		overrides[row.Date.Format("2006-01-02")] = row.Price
	}
	return overrides, nil
}

// QuoteTotal is the pure quoting rule. Ranges of at least
// monthlyThreshold nights are charged the flat monthly rate; shorter ranges
// sum per-night prices with the checkout day excluded. An override for a
// night wins over both rates.
func QuoteTotal(
	r models.DateRange,
	weekdayRate, weekendRate, monthlyRate float64,
	overrides map[string]float64,
	weekendDays map[time.Weekday]bool,
	monthlyThreshold int,
) (float64, error) {
	if monthlyThreshold <= 0 {
		monthlyThreshold = defaultMonthlyThresholdNights
	}
	nights := r.Nights()

	if nights >= monthlyThreshold {
		if monthlyRate <= 0 {
			return 0, ErrIncompleteRate
		}
		return monthlyRate, nil
	}

	var total float64
	for night := r.Start; night.Before(r.End); night = night.AddDate(0, 0, 1) {
		if price, ok := overrides[night.Format("2006-01-02")]; ok {
			total += price
			continue
		}
		rate := weekdayRate
		if weekendDays[night.Weekday()] {
			rate = weekendRate
		}
		if rate <= 0 {
			return 0, ErrIncompleteRate
		}
		total += rate
	}
	return total, nil
}

// SeasonTotal prices a season rental: monthly rate times the number of
// started 30-day months, with a one-month minimum.
func SeasonTotal(monthlyRate float64, r models.DateRange) (float64, error) {
	if monthlyRate <= 0 {
		return 0, ErrIncompleteRate
	}
	months := (r.Nights() + seasonMonthDays - 1) / seasonMonthDays
	if months < 1 {
		months = 1
	}
	return monthlyRate * float64(months), nil
}

func parseWeekendDays(raw string) map[time.Weekday]bool {
	names := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	out := make(map[time.Weekday]bool)
	for _, part := range strings.Split(raw, ",") {
		if day, ok := names[strings.ToLower(strings.TrimSpace(part))]; ok {
			out[day] = true
		}
	}
	if len(out) == 0 {
		out[time.Saturday] = true
		out[time.Sunday] = true
	}
	return out
}

func parseThreshold(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return defaultMonthlyThresholdNights
	}
	return n
}
