package models

import "time"

// Tag represents a label owned by a user. Names are unique per owner, not
// globally: two users may both have an "urgent" tag.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;type:varchar(50);uniqueIndex:uq_user_tag_name"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:uq_user_tag_name"`
	Color     *string   `json:"color,omitempty" gorm:"type:varchar(7)"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`

	// Foreign Key Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:UserID"`
}
