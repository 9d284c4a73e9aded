package services

import (
	"fmt"
	"strings"
	"time"

	"rental-backend/models"

	ics "github.com/arran4/golang-ical"
	"gorm.io/gorm"
)

// CalendarSyncService translates between the availability ledger and the
// iCal text format, for syncing with external channel calendars.
type CalendarSyncService struct {
	DB     *gorm.DB
	Ledger *AvailabilityService
}

func NewCalendarSyncService(db *gorm.DB, ledger *AvailabilityService) *CalendarSyncService {
	return &CalendarSyncService{DB: db, Ledger: ledger}
}

type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ImportICS blocks one day per VEVENT DTSTART with provenance ical. The
// whole payload is parsed before any ledger write and the writes run in one
// transaction, so a malformed calendar never leaves a half-imported ledger.
// Re-importing the same feed is a no-op thanks to the idempotent insert.
func (s *CalendarSyncService) ImportICS(propertyID uint, icsText string) (ImportResult, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(icsText))
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrICSParse, err)
	}

	events := cal.Events()
	days := make([]time.Time, 0, len(events))
	for _, event := range events {
		day, derr := eventStartDay(event)
		if derr != nil {
			return ImportResult{}, derr
		}
		days = append(days, day)
	}

	var result ImportResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, day := range days {
			added, berr := s.Ledger.block(tx, propertyID,
				models.DateRange{Start: day, End: day}, models.ProvenanceICal)
			if berr != nil {
				return berr
			}
			result.Added += int(added)
			result.Skipped += 1 - int(added)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// ExportICS serializes every blocked day of the property, whatever its
// provenance, as one all-day VEVENT with a deterministic index-based UID.
func (s *CalendarSyncService) ExportICS(propertyID uint) (string, error) {
	rows, err := s.Ledger.ListAllBlocked(propertyID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//rental-backend//availability//EN")
	for i, row := range rows {
		event := cal.AddEvent(fmt.Sprintf("blocked-%d-%d@rental-backend", propertyID, i))
		event.SetAllDayStartAt(row.Date)
		event.SetAllDayEndAt(row.Date.AddDate(0, 0, 1))
		event.SetSummary("Blocked")
	}
	return cal.Serialize(), nil
}

// eventStartDay extracts the calendar day from a VEVENT's DTSTART, accepting
// both VALUE=DATE values (20060102) and datetimes (20060102T150405Z).
func eventStartDay(event *ics.VEvent) (time.Time, error) {
	prop := event.GetProperty(ics.ComponentPropertyDtStart)
	if prop == nil || prop.Value == "" {
		return time.Time{}, fmt.Errorf("%w: VEVENT missing DTSTART", ErrICSParse)
	}
	value := prop.Value
	if idx := strings.IndexByte(value, 'T'); idx > 0 {
		value = value[:idx]
	}
	day, err := time.ParseInLocation("20060102", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad DTSTART %q", ErrICSParse, prop.Value)
	}
	return day, nil
}
