package repository

import (
	"context"
	"errors"
	"time"

	"github.com/zenithtask/zenithtask/pkg/models"
	"gorm.io/gorm"
)

// FocusSessionCreate carries the caller-supplied fields for a new session.
type FocusSessionCreate struct {
	TaskID    *uint                     `json:"task_id"`
	StartTime *time.Time                `json:"start_time"`
	EndTime   *time.Time                `json:"end_time"`
	Status    models.FocusSessionStatus `json:"status" binding:"omitempty,oneof=active paused completed cancelled"`
	Notes     string                    `json:"notes" binding:"max=500"`
}

// FocusSessionUpdate is a partial-field patch for a session.
type FocusSessionUpdate struct {
	TaskID    *uint                      `json:"task_id"`
	StartTime *time.Time                 `json:"start_time"`
	EndTime   *time.Time                 `json:"end_time"`
	Status    *models.FocusSessionStatus `json:"status" binding:"omitempty,oneof=active paused completed cancelled"`
	Notes     *string                    `json:"notes" binding:"omitempty,max=500"`
}

// FocusSessionFilter composes optional predicates for session listings.
type FocusSessionFilter struct {
	TaskID      *uint
	Status      *models.FocusSessionStatus
	StartAfter  *time.Time
	StartBefore *time.Time
	Skip        int
	Limit       int
}

// GetFocusSession retrieves one of the user's focus sessions by ID.
func (s *Store) GetFocusSession(ctx context.Context, id, userID uint) (*models.FocusSession, error) {
	var session models.FocusSession
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// ListFocusSessions returns the user's sessions matching the filter, newest
// start time first.
func (s *Store) ListFocusSessions(ctx context.Context, userID uint, filter FocusSessionFilter) ([]models.FocusSession, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.TaskID != nil {
		query = query.Where("task_id = ?", *filter.TaskID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartAfter != nil {
		query = query.Where("start_time >= ?", *filter.StartAfter)
	}
	if filter.StartBefore != nil {
		query = query.Where("start_time <= ?", *filter.StartBefore)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var sessions []models.FocusSession
	err := query.Order("start_time DESC").Offset(filter.Skip).Limit(limit).Find(&sessions).Error
	return sessions, err
}

// CreateFocusSession creates a session for the user. StartTime defaults to
// now and status to active.
func (s *Store) CreateFocusSession(ctx context.Context, create FocusSessionCreate, userID uint) (*models.FocusSession, error) {
	session := models.FocusSession{
		UserID:  userID,
		TaskID:  create.TaskID,
		EndTime: create.EndTime,
		Status:  create.Status,
		Notes:   create.Notes,
	}
	if create.StartTime != nil {
		session.StartTime = *create.StartTime
	} else {
		session.StartTime = time.Now()
	}
	if session.Status == "" {
		session.Status = models.FocusSessionActive
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateFocusSession applies a partial patch to a session.
func (s *Store) UpdateFocusSession(ctx context.Context, session *models.FocusSession, update FocusSessionUpdate) (*models.FocusSession, error) {
	if update.TaskID != nil {
		session.TaskID = update.TaskID
	}
	if update.StartTime != nil {
		session.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		session.EndTime = update.EndTime
	}
	if update.Status != nil {
		session.Status = *update.Status
	}
	if update.Notes != nil {
		session.Notes = *update.Notes
	}
	if err := s.db.WithContext(ctx).Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteFocusSession removes one of the user's sessions. Returns the deleted
// session, or nil when it is not visible to the caller.
func (s *Store) DeleteFocusSession(ctx context.Context, id, userID uint) (*models.FocusSession, error) {
	session, err := s.GetFocusSession(ctx, id, userID)
	if err != nil || session == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}
