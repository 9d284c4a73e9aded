package models

import (
	"time"
)

// Provenance tags on a blocked date, distinguishing operator blocks,
// iCal-imported days and days held by a confirmed booking.
const (
	ProvenanceManual  = "manual"
	ProvenanceICal    = "ical"
	ProvenanceBooking = "booking"
)

// BlockedDate is one unavailable calendar day for a property. The unique
// index spans (property_id, date) with no provenance component, so two
// writers racing for the same day hit a real conflict instead of sharing it.
// Rows are hard-deleted; a soft-delete column would collide with the index
// when a freed day is blocked again.
type BlockedDate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PropertyID uint      `gorm:"not null;uniqueIndex:idx_blocked_property_date,priority:1" json:"property_id"`
	Date       time.Time `gorm:"not null;uniqueIndex:idx_blocked_property_date,priority:2" json:"date"`
	Provenance string    `gorm:"size:16;not null;index" json:"provenance"`
}
