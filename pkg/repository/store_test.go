package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zenithtask/zenithtask/pkg/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// In-memory sqlite lives and dies with a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return NewStore(db)
}

func createTestUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), username, username+"@example.com", "secret-password")
	require.NoError(t, err)
	return user
}

func createTestProject(t *testing.T, s *Store, ownerID uint, name string) *models.Project {
	t.Helper()
	project, err := s.CreateProject(context.Background(), ProjectCreate{Name: name}, ownerID)
	require.NoError(t, err)
	return project
}

func createTestTask(t *testing.T, s *Store, projectID uint, title string) *models.Task {
	t.Helper()
	task, err := s.CreateTask(context.Background(), TaskCreate{Title: title, ProjectID: projectID})
	require.NoError(t, err)
	return task
}

func createTestTag(t *testing.T, s *Store, userID uint, name string) *models.Tag {
	t.Helper()
	tag, err := s.CreateTag(context.Background(), TagCreate{Name: name}, userID)
	require.NoError(t, err)
	return tag
}

func timePtr(t time.Time) *time.Time { return &t }
func floatPtr(f float64) *float64    { return &f }
func intPtr(i int) *int              { return &i }
func uintPtr(u uint) *uint           { return &u }
func boolPtr(b bool) *bool           { return &b }
func strPtr(s string) *string        { return &s }
