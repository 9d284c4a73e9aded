package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reservation statuses. pending is the only initial status; rejected and
// cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Reservation kinds. Stay bookings block calendar days when confirmed;
// season rentals are month-scale tenancies tracked by status only.
const (
	KindStay   = "stay"
	KindSeason = "season"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID    uint   `gorm:"index;column:property_id" json:"property_id"`
	Kind          string `gorm:"column:kind;size:16;default:'stay'" json:"kind"`
	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`

	GuestName  string `gorm:"column:guest_name;size:255" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:255" json:"guestEmail"`
	GuestPhone string `gorm:"column:guest_phone;size:64" json:"guestPhone,omitempty"`

	OccupantCount   int            `gorm:"column:occupant_count;default:1" json:"occupantCount"`
	CompanionGuests datatypes.JSON `gorm:"column:companion_guests" json:"companionGuests,omitempty"`

	// Quoted once at creation, never recomputed on read.
	TotalPrice float64 `gorm:"column:total_price" json:"totalPrice"`

	Status     string `gorm:"column:status;size:16;index" json:"status"`
	StatusNote string `gorm:"column:status_note;size:255" json:"statusNote,omitempty"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

// Range returns the reservation's date span as a DateRange.
func (r *Reservation) Range() (DateRange, error) {
	return NewDateRange(r.CheckIn, r.CheckOut)
}
