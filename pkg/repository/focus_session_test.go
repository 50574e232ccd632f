package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithtask/zenithtask/pkg/models"
)

func TestCreateFocusSessionDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "focused")
	before := time.Now().Add(-time.Second)
	session, err := s.CreateFocusSession(ctx, FocusSessionCreate{}, user.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, models.FocusSessionActive, session.Status)
	assert.True(t, session.StartTime.After(before))
	assert.Nil(t, session.EndTime)
	assert.Nil(t, session.TaskID)
}

func TestFocusSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "worker")
	project := createTestProject(t, s, user.ID, "Deep work")
	task := createTestTask(t, s, project.ID, "write report")

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	session, err := s.CreateFocusSession(ctx, FocusSessionCreate{
		TaskID:    &task.ID,
		StartTime: &start,
	}, user.ID)
	require.NoError(t, err)

	end := start.Add(25 * time.Minute)
	completed := models.FocusSessionCompleted
	session, err = s.UpdateFocusSession(ctx, session, FocusSessionUpdate{
		EndTime: &end,
		Status:  &completed,
		Notes:   strPtr("finished the draft"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.FocusSessionCompleted, session.Status)
	require.NotNil(t, session.EndTime)
	assert.True(t, end.Equal(*session.EndTime))
	assert.Equal(t, "finished the draft", session.Notes)
}

func TestListFocusSessionsFiltersAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "tracker")
	other := createTestUser(t, s, "stranger")
	project := createTestProject(t, s, user.ID, "Focus")
	task := createTestTask(t, s, project.ID, "tracked")

	base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	mkSession := func(offset time.Duration, taskID *uint, status models.FocusSessionStatus) *models.FocusSession {
		t.Helper()
		start := base.Add(offset)
		session, err := s.CreateFocusSession(ctx, FocusSessionCreate{
			TaskID:    taskID,
			StartTime: &start,
			Status:    status,
		}, user.ID)
		require.NoError(t, err)
		return session
	}
	early := mkSession(0, &task.ID, models.FocusSessionCompleted)
	late := mkSession(2*time.Hour, nil, models.FocusSessionActive)
	mid := mkSession(time.Hour, &task.ID, models.FocusSessionCancelled)

	foreignStart := base.Add(30 * time.Minute)
	_, err := s.CreateFocusSession(ctx, FocusSessionCreate{StartTime: &foreignStart}, other.ID)
	require.NoError(t, err)

	// Only the caller's sessions, newest first.
	got, err := s.ListFocusSessions(ctx, user.ID, FocusSessionFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []uint{late.ID, mid.ID, early.ID}, []uint{got[0].ID, got[1].ID, got[2].ID})

	got, err = s.ListFocusSessions(ctx, user.ID, FocusSessionFilter{TaskID: &task.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	active := models.FocusSessionActive
	got, err = s.ListFocusSessions(ctx, user.ID, FocusSessionFilter{Status: &active})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, late.ID, got[0].ID)

	after := base.Add(30 * time.Minute)
	before := base.Add(90 * time.Minute)
	got, err = s.ListFocusSessions(ctx, user.ID, FocusSessionFilter{StartAfter: &after, StartBefore: &before})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mid.ID, got[0].ID)
}

func TestFocusSessionScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	session, err := s.CreateFocusSession(ctx, FocusSessionCreate{}, alice.ID)
	require.NoError(t, err)

	got, err := s.GetFocusSession(ctx, session.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := s.DeleteFocusSession(ctx, session.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	deleted, err = s.DeleteFocusSession(ctx, session.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
}
