package repository

import (
	"context"
	"errors"
	"time"

	"github.com/zenithtask/zenithtask/pkg/models"
	"gorm.io/gorm"
)

// EnergyLogCreate carries the caller-supplied fields for a new log entry.
type EnergyLogCreate struct {
	Timestamp   *time.Time `json:"timestamp"`
	EnergyLevel int        `json:"energy_level" binding:"required,min=1,max=5"`
	Notes       string     `json:"notes" binding:"max=500"`
}

// EnergyLogUpdate is a partial-field patch for a log entry.
type EnergyLogUpdate struct {
	Timestamp   *time.Time `json:"timestamp"`
	EnergyLevel *int       `json:"energy_level" binding:"omitempty,min=1,max=5"`
	Notes       *string    `json:"notes" binding:"omitempty,max=500"`
}

// EnergyLogFilter composes optional predicates for log listings.
type EnergyLogFilter struct {
	EnergyLevel *int
	After       *time.Time
	Before      *time.Time
	Skip        int
	Limit       int
}

// GetEnergyLog retrieves one of the user's energy logs by ID.
func (s *Store) GetEnergyLog(ctx context.Context, id, userID uint) (*models.EnergyLog, error) {
	var log models.EnergyLog
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// ListEnergyLogs returns the user's logs matching the filter, newest first.
func (s *Store) ListEnergyLogs(ctx context.Context, userID uint, filter EnergyLogFilter) ([]models.EnergyLog, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.EnergyLevel != nil {
		query = query.Where("energy_level = ?", *filter.EnergyLevel)
	}
	if filter.After != nil {
		query = query.Where("timestamp >= ?", *filter.After)
	}
	if filter.Before != nil {
		query = query.Where("timestamp <= ?", *filter.Before)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var logs []models.EnergyLog
	err := query.Order("timestamp DESC").Offset(filter.Skip).Limit(limit).Find(&logs).Error
	return logs, err
}

// CreateEnergyLog records an energy level for the user. Timestamp defaults
// to now.
func (s *Store) CreateEnergyLog(ctx context.Context, create EnergyLogCreate, userID uint) (*models.EnergyLog, error) {
	log := models.EnergyLog{
		UserID:      userID,
		EnergyLevel: create.EnergyLevel,
		Notes:       create.Notes,
	}
	if create.Timestamp != nil {
		log.Timestamp = *create.Timestamp
	} else {
		log.Timestamp = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// UpdateEnergyLog applies a partial patch to a log entry.
func (s *Store) UpdateEnergyLog(ctx context.Context, log *models.EnergyLog, update EnergyLogUpdate) (*models.EnergyLog, error) {
	if update.Timestamp != nil {
		log.Timestamp = *update.Timestamp
	}
	if update.EnergyLevel != nil {
		log.EnergyLevel = *update.EnergyLevel
	}
	if update.Notes != nil {
		log.Notes = *update.Notes
	}
	if err := s.db.WithContext(ctx).Save(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

// DeleteEnergyLog removes one of the user's log entries. Returns the deleted
// entry, or nil when it is not visible to the caller.
func (s *Store) DeleteEnergyLog(ctx context.Context, id, userID uint) (*models.EnergyLog, error) {
	log, err := s.GetEnergyLog(ctx, id, userID)
	if err != nil || log == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}
