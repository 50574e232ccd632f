package models

import "time"

// Project represents a project owned by a single user.
//
// IsArchived and ArchivedAt move together: archiving stamps ArchivedAt,
// unarchiving clears it. Every write path recomputes ArchivedAt from
// IsArchived instead of trusting the caller's timestamp.
type Project struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null;index;type:varchar(100)"`
	Description string     `json:"description" gorm:"type:varchar(500)"`
	OwnerID     uint       `json:"owner_id" gorm:"not null;index"`
	IsArchived  bool       `json:"is_archived" gorm:"not null;default:false"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"not null"`

	// Foreign Key Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`

	// One-to-Many Relations
	Tasks []*Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
