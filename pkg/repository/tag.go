package repository

import (
	"context"
	"errors"

	"github.com/zenithtask/zenithtask/pkg/models"
	"gorm.io/gorm"
)

// TagCreate carries the caller-supplied fields for a new tag.
type TagCreate struct {
	Name  string  `json:"name" binding:"required,max=50"`
	Color *string `json:"color" binding:"omitempty,max=7"`
}

// TagUpdate is a partial-field patch for a tag.
type TagUpdate struct {
	Name  *string `json:"name" binding:"omitempty,max=50"`
	Color *string `json:"color" binding:"omitempty,max=7"`
}

// GetTag retrieves a tag by ID, scoped to its owning user.
func (s *Store) GetTag(ctx context.Context, id, userID uint) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetTagByName retrieves one of the user's tags by exact name.
func (s *Store) GetTagByName(ctx context.Context, userID uint, name string) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// ListTags returns a page of the user's tags.
func (s *Store) ListTags(ctx context.Context, userID uint, skip, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Offset(skip).Limit(limit).Find(&tags).Error
	return tags, err
}

// CreateTag creates a tag for the user. The name must not collide with
// another of the user's tags; the check runs in the same transaction as the
// insert, with the (user_id, name) unique index as the backstop for races.
func (s *Store) CreateTag(ctx context.Context, create TagCreate, userID uint) (*models.Tag, error) {
	tag := models.Tag{
		Name:   create.Name,
		UserID: userID,
		Color:  create.Color,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tag{}).
			Where("user_id = ? AND name = ?", userID, create.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateTagName
		}
		return tx.Create(&tag).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// UpdateTag applies a partial patch to a tag. Renaming to another of the
// user's tag names fails; renaming to the current name is not a collision.
func (s *Store) UpdateTag(ctx context.Context, tag *models.Tag, update TagUpdate) (*models.Tag, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if update.Name != nil && *update.Name != tag.Name {
			var count int64
			if err := tx.Model(&models.Tag{}).
				Where("user_id = ? AND name = ? AND id <> ?", tag.UserID, *update.Name, tag.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateTagName
			}
			tag.Name = *update.Name
		}
		if update.Color != nil {
			tag.Color = update.Color
		}
		return tx.Save(tag).Error
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes one of the user's tags and its task associations.
// Returns the deleted tag, or nil when it is not visible to the caller.
func (s *Store) DeleteTag(ctx context.Context, id, userID uint) (*models.Tag, error) {
	tag, err := s.GetTag(ctx, id, userID)
	if err != nil || tag == nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// AddTagToTask links a tag to a task. Both sides are re-resolved under the
// user's scope first; if either is absent the call is a no-op returning nil.
// Linking an already-linked pair is idempotent.
func (s *Store) AddTagToTask(ctx context.Context, taskID, tagID, userID uint) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID, &userID)
	if err != nil || task == nil {
		return nil, err
	}
	tag, err := s.GetTag(ctx, tagID, userID)
	if err != nil || tag == nil {
		return nil, err
	}
	var count int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.TaskTag{}).
		Where("task_id = ? AND tag_id = ?", taskID, tagID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		if err := db.Create(&models.TaskTag{TaskID: taskID, TagID: tagID}).Error; err != nil {
			// A concurrent insert of the same pair still counts as linked.
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, err
			}
		}
	}
	return task, nil
}

// RemoveTagFromTask unlinks a tag from a task. Removing an unlinked pair is
// a no-op; an absent task or tag returns nil.
func (s *Store) RemoveTagFromTask(ctx context.Context, taskID, tagID, userID uint) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID, &userID)
	if err != nil || task == nil {
		return nil, err
	}
	tag, err := s.GetTag(ctx, tagID, userID)
	if err != nil || tag == nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).
		Where("task_id = ? AND tag_id = ?", taskID, tagID).
		Delete(&models.TaskTag{}).Error
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetTagsForTask returns the tags linked to a task. An empty result means
// either that the task has no tags or that it is not visible to the caller;
// callers needing the distinction must check task existence separately.
func (s *Store) GetTagsForTask(ctx context.Context, taskID, userID uint) ([]models.Tag, error) {
	task, err := s.GetTask(ctx, taskID, &userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	err = s.db.WithContext(ctx).
		Joins("JOIN task_tags ON task_tags.tag_id = tags.id").
		Where("task_tags.task_id = ?", taskID).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
