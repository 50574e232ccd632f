package models

import "time"

// FocusSessionStatus represents the status of a focus session
type FocusSessionStatus string

const (
	FocusSessionActive    FocusSessionStatus = "active"
	FocusSessionPaused    FocusSessionStatus = "paused"
	FocusSessionCompleted FocusSessionStatus = "completed"
	FocusSessionCancelled FocusSessionStatus = "cancelled"
)

// Valid reports whether s is one of the known session states.
func (s FocusSessionStatus) Valid() bool {
	switch s {
	case FocusSessionActive, FocusSessionPaused, FocusSessionCompleted, FocusSessionCancelled:
		return true
	}
	return false
}

// FocusSession represents a timed work session, optionally tied to a task.
type FocusSession struct {
	ID        uint               `json:"id" gorm:"primaryKey"`
	UserID    uint               `json:"user_id" gorm:"not null;index"`
	TaskID    *uint              `json:"task_id,omitempty"`
	StartTime time.Time          `json:"start_time" gorm:"not null"`
	EndTime   *time.Time         `json:"end_time,omitempty"`
	Status    FocusSessionStatus `json:"status" gorm:"not null;type:varchar(20);default:'active'"`
	Notes     string             `json:"notes,omitempty" gorm:"type:varchar(500)"`

	// Foreign Key Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Task *Task `json:"task,omitempty" gorm:"foreignKey:TaskID"`
}
