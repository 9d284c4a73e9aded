package models

import (
	"time"
)

// PriceOverride pins the nightly price for one exact date, taking precedence
// over the property's weekday/weekend rates. Managed by the owner directly,
// independent of any reservation.
type PriceOverride struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PropertyID uint      `gorm:"not null;uniqueIndex:idx_override_property_date,priority:1" json:"property_id"`
	Date       time.Time `gorm:"not null;uniqueIndex:idx_override_property_date,priority:2" json:"date"`
	Price      float64   `gorm:"not null" json:"price"`
}
