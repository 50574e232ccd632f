package repository

import (
	"context"
	"errors"
	"time"

	"github.com/zenithtask/zenithtask/pkg/models"
	"gorm.io/gorm"
)

// taskOrder is the fixed sort chain for task listings. It is a total
// tie-break so pagination stays stable.
const taskOrder = "tasks.order_in_list ASC, tasks.priority DESC, tasks.due_date ASC, tasks.created_at ASC"

// Reorder status strings mapped onto the boolean completed field.
const (
	ReorderStatusCompleted = "completed"
	ReorderStatusPending   = "pending"
)

// TaskCreate carries the caller-supplied fields for a new task.
type TaskCreate struct {
	Title             string     `json:"title" binding:"required,max=200"`
	Description       string     `json:"description" binding:"max=1000"`
	ProjectID         uint       `json:"project_id" binding:"required"`
	AssigneeID        *uint      `json:"assignee_id"`
	DueDate           *time.Time `json:"due_date"`
	Priority          int        `json:"priority" binding:"min=0,max=2"`
	ParentTaskID      *uint      `json:"parent_task_id"`
	OrderInList       *float64   `json:"order_in_list"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurringSchedule *string    `json:"recurring_schedule"`
}

// TaskUpdate is a partial-field patch for a task. Only fields present in the
// payload are applied.
type TaskUpdate struct {
	Title             *string    `json:"title" binding:"omitempty,max=200"`
	Description       *string    `json:"description" binding:"omitempty,max=1000"`
	Completed         *bool      `json:"completed"`
	ProjectID         *uint      `json:"project_id"`
	AssigneeID        *uint      `json:"assignee_id"`
	DueDate           *time.Time `json:"due_date"`
	Priority          *int       `json:"priority" binding:"omitempty,min=0,max=2"`
	ParentTaskID      *uint      `json:"parent_task_id"`
	OrderInList       *float64   `json:"order_in_list"`
	IsRecurring       *bool      `json:"is_recurring"`
	RecurringSchedule *string    `json:"recurring_schedule"`
}

// TaskFilter composes optional predicates for task listings. Filters combine
// conjunctively; TagIDs matches tasks carrying at least one of the given tags.
type TaskFilter struct {
	ProjectID    *uint
	Completed    *bool
	DueBefore    *time.Time
	DueAfter     *time.Time
	Priority     *int
	ParentTaskID *uint
	IsRecurring  *bool
	TagIDs       []uint
	Skip         int
	Limit        int
}

// TaskReorderItem is one entry of a reorder batch.
type TaskReorderItem struct {
	TaskID      uint     `json:"task_id" binding:"required"`
	OrderInList *float64 `json:"order_in_list"`
	Status      *string  `json:"status" binding:"omitempty,oneof=completed pending"`
	ProjectID   *uint    `json:"project_id"`
}

func getTaskTx(tx *gorm.DB, id uint, userID *uint) (*models.Task, error) {
	query := tx.Where("tasks.id = ?", id)
	if userID != nil {
		query = query.
			Joins("JOIN projects ON projects.id = tasks.project_id").
			Where("projects.owner_id = ?", *userID)
	}
	var task models.Task
	if err := query.First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// GetTask retrieves a task by ID. When userID is non-nil the task must
// belong to a project owned by that user; a foreign task reads as absent.
func (s *Store) GetTask(ctx context.Context, id uint, userID *uint) (*models.Task, error) {
	return getTaskTx(s.db.WithContext(ctx), id, userID)
}

// ListTasks returns the user's tasks matching the filter, in the fixed sort
// order. The project-owner join is always applied.
func (s *Store) ListTasks(ctx context.Context, userID uint, filter TaskFilter) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Model(&models.Task{}).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.owner_id = ?", userID)

	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.Completed != nil {
		query = query.Where("tasks.completed = ?", *filter.Completed)
	}
	if filter.DueBefore != nil {
		query = query.Where("tasks.due_date <= ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		query = query.Where("tasks.due_date >= ?", *filter.DueAfter)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.ParentTaskID != nil {
		query = query.Where("tasks.parent_task_id = ?", *filter.ParentTaskID)
	}
	if filter.IsRecurring != nil {
		query = query.Where("tasks.is_recurring = ?", *filter.IsRecurring)
	}
	if len(filter.TagIDs) > 0 {
		query = query.Where("tasks.id IN (?)",
			s.db.Model(&models.TaskTag{}).Select("task_id").Where("tag_id IN ?", filter.TagIDs))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var tasks []models.Task
	err := query.Order(taskOrder).Offset(filter.Skip).Limit(limit).Find(&tasks).Error
	return tasks, err
}

// CreateTask creates a task. The project must be set; verifying that the
// caller owns the project is the handler's responsibility.
func (s *Store) CreateTask(ctx context.Context, create TaskCreate) (*models.Task, error) {
	if create.ProjectID == 0 {
		return nil, ErrProjectRequired
	}
	task := models.Task{
		Title:             create.Title,
		Description:       create.Description,
		ProjectID:         create.ProjectID,
		AssigneeID:        create.AssigneeID,
		DueDate:           create.DueDate,
		Priority:          create.Priority,
		ParentTaskID:      create.ParentTaskID,
		OrderInList:       create.OrderInList,
		IsRecurring:       create.IsRecurring,
		RecurringSchedule: create.RecurringSchedule,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial patch to a task already fetched through an
// ownership-scoped read.
func (s *Store) UpdateTask(ctx context.Context, task *models.Task, update TaskUpdate) (*models.Task, error) {
	applyTaskUpdate(task, update)
	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func applyTaskUpdate(task *models.Task, update TaskUpdate) {
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	if update.ProjectID != nil {
		task.ProjectID = *update.ProjectID
	}
	if update.AssigneeID != nil {
		task.AssigneeID = update.AssigneeID
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.ParentTaskID != nil {
		task.ParentTaskID = update.ParentTaskID
	}
	if update.OrderInList != nil {
		task.OrderInList = update.OrderInList
	}
	if update.IsRecurring != nil {
		task.IsRecurring = *update.IsRecurring
	}
	if update.RecurringSchedule != nil {
		task.RecurringSchedule = update.RecurringSchedule
	}
}

// DeleteTask removes a task reachable by the user, along with its whole
// subtask tree and every tag link in it. Returns the deleted task, or nil
// when it is not visible to the caller.
func (s *Store) DeleteTask(ctx context.Context, id, userID uint) (*models.Task, error) {
	task, err := s.GetTask(ctx, id, &userID)
	if err != nil || task == nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Walk the subtask tree level by level so grandchildren go too.
		// Seen-tracking keeps a malformed parent cycle from looping.
		seen := map[uint]bool{id: true}
		ids := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var children []uint
			err := tx.Model(&models.Task{}).Where("parent_task_id IN ?", frontier).Pluck("id", &children).Error
			if err != nil {
				return err
			}
			frontier = frontier[:0]
			for _, childID := range children {
				if seen[childID] {
					continue
				}
				seen[childID] = true
				ids = append(ids, childID)
				frontier = append(frontier, childID)
			}
		}
		if err := tx.Where("task_id IN ?", ids).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Task{}).Error
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ReorderTasks applies a batch of order/status/project changes inside one
// transaction. Any task or target project that cannot be resolved for the
// user aborts the whole batch; nothing is committed on failure.
func (s *Store) ReorderTasks(ctx context.Context, items []TaskReorderItem, userID uint) ([]models.Task, error) {
	updated := make([]models.Task, 0, len(items))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			task, err := getTaskTx(tx, item.TaskID, &userID)
			if err != nil {
				return err
			}
			if task == nil {
				return ErrNotOwned
			}
			if item.OrderInList != nil {
				task.OrderInList = item.OrderInList
			}
			if item.Status != nil {
				task.Completed = *item.Status == ReorderStatusCompleted
			}
			if item.ProjectID != nil && *item.ProjectID != task.ProjectID {
				var project models.Project
				err := tx.Where("id = ? AND owner_id = ?", *item.ProjectID, userID).First(&project).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotOwned
				}
				if err != nil {
					return err
				}
				task.ProjectID = project.ID
			}
			if err := tx.Save(task).Error; err != nil {
				return err
			}
			updated = append(updated, *task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
