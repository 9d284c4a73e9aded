package models

import (
	"time"

	"gorm.io/gorm"
)

type Property struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `json:"name"`
	Description string `gorm:"type:text" json:"description"`

	WeekdayRate float64 `gorm:"column:weekday_rate" json:"weekdayRate"`
	WeekendRate float64 `gorm:"column:weekend_rate" json:"weekendRate"`
	MonthlyRate float64 `gorm:"column:monthly_rate" json:"monthlyRate"`

	MinNights int `gorm:"column:min_nights;default:1" json:"minNights"`
	MaxNights int `gorm:"column:max_nights;default:0" json:"maxNights"`
}
