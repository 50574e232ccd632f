package repository

import (
	"context"
	"errors"
	"time"

	"github.com/zenithtask/zenithtask/pkg/models"
	"gorm.io/gorm"
)

// ProjectCreate carries the caller-supplied fields for a new project.
type ProjectCreate struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description" binding:"max=500"`
	IsArchived  bool       `json:"is_archived"`
	ArchivedAt  *time.Time `json:"archived_at"`
}

// ProjectUpdate is a partial-field patch for a project.
type ProjectUpdate struct {
	Name        *string    `json:"name" binding:"omitempty,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	IsArchived  *bool      `json:"is_archived"`
	ArchivedAt  *time.Time `json:"archived_at"`
}

// applyArchivalState keeps the IsArchived/ArchivedAt pair consistent:
// archiving stamps the time (unless the caller supplied one), unarchiving
// always clears it regardless of the supplied value.
func applyArchivalState(p *models.Project, suppliedAt *time.Time) {
	if p.IsArchived {
		if suppliedAt != nil {
			p.ArchivedAt = suppliedAt
		} else if p.ArchivedAt == nil {
			now := time.Now()
			p.ArchivedAt = &now
		}
	} else {
		p.ArchivedAt = nil
	}
}

// GetProject retrieves a project by ID. When userID is non-nil the lookup is
// scoped to that owner and a foreign project reads as absent.
func (s *Store) GetProject(ctx context.Context, id uint, userID *uint) (*models.Project, error) {
	query := s.db.WithContext(ctx).Where("id = ?", id)
	if userID != nil {
		query = query.Where("owner_id = ?", *userID)
	}
	var project models.Project
	if err := query.First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// ListProjects returns the user's projects. Archived projects are excluded
// unless the archived filter asks for them.
func (s *Store) ListProjects(ctx context.Context, userID uint, archived *bool, skip, limit int) ([]models.Project, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", userID)
	if archived != nil {
		query = query.Where("is_archived = ?", *archived)
	}
	var projects []models.Project
	err := query.Offset(skip).Limit(limit).Find(&projects).Error
	return projects, err
}

// CreateProject creates a project for the given owner.
func (s *Store) CreateProject(ctx context.Context, create ProjectCreate, ownerID uint) (*models.Project, error) {
	project := models.Project{
		Name:        create.Name,
		Description: create.Description,
		OwnerID:     ownerID,
		IsArchived:  create.IsArchived,
	}
	applyArchivalState(&project, create.ArchivedAt)
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies a partial patch to a project, recomputing the
// archival timestamp from the archived flag.
func (s *Store) UpdateProject(ctx context.Context, project *models.Project, update ProjectUpdate) (*models.Project, error) {
	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.IsArchived != nil {
		wasArchived := project.IsArchived
		project.IsArchived = *update.IsArchived
		if project.IsArchived && !wasArchived {
			project.ArchivedAt = nil // force a fresh stamp unless supplied
		}
	}
	applyArchivalState(project, update.ArchivedAt)
	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project owned by the user; its tasks go with it.
// Returns the deleted project, or nil when it does not exist or belongs to
// someone else.
func (s *Store) DeleteProject(ctx context.Context, id, userID uint) (*models.Project, error) {
	project, err := s.GetProject(ctx, id, &userID)
	if err != nil || project == nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}
