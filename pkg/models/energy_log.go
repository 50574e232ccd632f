package models

import "time"

// Energy levels, an ordered 1-5 scale.
const (
	EnergyVeryLow  = 1
	EnergyLow      = 2
	EnergyMedium   = 3
	EnergyHigh     = 4
	EnergyVeryHigh = 5
)

// EnergyLog records a user's self-reported energy level at a point in time.
type EnergyLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null"`
	EnergyLevel int       `json:"energy_level" gorm:"not null;check:energy_level >= 1 AND energy_level <= 5"`
	Notes       string    `json:"notes,omitempty" gorm:"type:varchar(500)"`

	// Foreign Key Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
