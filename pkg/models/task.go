package models

import "time"

// Task priority levels.
const (
	PriorityLow    = 0
	PriorityMedium = 1
	PriorityHigh   = 2
)

// Task represents a task in the system. Ownership is transitive: a task
// belongs to whoever owns its project, there is no direct owner column.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null;index;type:varchar(200)"`
	Description string     `json:"description" gorm:"type:varchar(1000)"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	ProjectID   uint       `json:"project_id" gorm:"not null;index:idx_tasks_project"`
	AssigneeID  *uint      `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    int        `json:"priority" gorm:"not null;default:0"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"not null"`

	// Subtasks and ordering
	ParentTaskID *uint    `json:"parent_task_id,omitempty" gorm:"index"`
	OrderInList  *float64 `json:"order_in_list,omitempty"`

	// Recurrence
	IsRecurring       bool    `json:"is_recurring" gorm:"not null;default:false"`
	RecurringSchedule *string `json:"recurring_schedule,omitempty"`

	// Foreign Key Relations
	Project  *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Assignee *User    `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
	Parent   *Task    `json:"parent,omitempty" gorm:"foreignKey:ParentTaskID"`

	// One-to-Many Relations
	SubTasks      []*Task         `json:"sub_tasks,omitempty" gorm:"foreignKey:ParentTaskID;constraint:OnDelete:CASCADE"`
	FocusSessions []*FocusSession `json:"focus_sessions,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:SET NULL"`
}

// TaskTag is the association row linking tasks and tags. The link is
// maintained by inserting and deleting these rows, not through ORM
// collection mutation.
type TaskTag struct {
	TaskID uint `json:"task_id" gorm:"primaryKey;autoIncrement:false"`
	TagID  uint `json:"tag_id" gorm:"primaryKey;autoIncrement:false"`

	Task *Task `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Tag  *Tag  `json:"tag,omitempty" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (TaskTag) TableName() string {
	return "task_tags"
}
