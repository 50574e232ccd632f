package models

import (
	"time"

	"gorm.io/datatypes"
)

// User represents an account in the system. The password is stored only as a
// bcrypt hash and never serialized.
type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Username       string         `json:"username" gorm:"not null;uniqueIndex;type:varchar(50)"`
	Email          string         `json:"email" gorm:"not null;uniqueIndex;type:varchar(100)"`
	HashedPassword string         `json:"-" gorm:"not null;type:varchar(255)"`
	IsActive       bool           `json:"is_active" gorm:"not null;default:true"`
	Preferences    datatypes.JSON `json:"preferences,omitempty"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"not null"`

	// One-to-Many Relations
	Projects      []*Project      `json:"projects,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Tags          []*Tag          `json:"tags,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FocusSessions []*FocusSession `json:"focus_sessions,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	EnergyLogs    []*EnergyLog    `json:"energy_logs,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
