package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectArchivalStampsTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "archiver")
	project := createTestProject(t, s, user.ID, "Inbox")
	require.False(t, project.IsArchived)
	require.Nil(t, project.ArchivedAt)

	before := time.Now().Add(-time.Second)
	project, err := s.UpdateProject(ctx, project, ProjectUpdate{IsArchived: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, project.IsArchived)
	require.NotNil(t, project.ArchivedAt)
	assert.True(t, project.ArchivedAt.After(before))

	// Unarchiving clears the timestamp even when the caller supplies one.
	supplied := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	project, err = s.UpdateProject(ctx, project, ProjectUpdate{IsArchived: boolPtr(false), ArchivedAt: &supplied})
	require.NoError(t, err)
	assert.False(t, project.IsArchived)
	assert.Nil(t, project.ArchivedAt)
}

func TestProjectArchivalHonorsSuppliedTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "backfiller")
	supplied := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	project, err := s.CreateProject(ctx, ProjectCreate{
		Name:       "Old work",
		IsArchived: true,
		ArchivedAt: &supplied,
	}, user.ID)
	require.NoError(t, err)
	assert.True(t, project.IsArchived)
	require.NotNil(t, project.ArchivedAt)
	assert.True(t, supplied.Equal(*project.ArchivedAt))
}

func TestListProjectsArchivedFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "lister")
	active := createTestProject(t, s, user.ID, "Active")
	archived := createTestProject(t, s, user.ID, "Done")
	_, err := s.UpdateProject(ctx, archived, ProjectUpdate{IsArchived: boolPtr(true)})
	require.NoError(t, err)

	got, err := s.ListProjects(ctx, user.ID, boolPtr(false), 0, 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)

	got, err = s.ListProjects(ctx, user.ID, boolPtr(true), 0, 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, archived.ID, got[0].ID)

	got, err = s.ListProjects(ctx, user.ID, nil, 0, 100)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProjectOwnershipScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	project := createTestProject(t, s, alice.ID, "Hers")

	got, err := s.GetProject(ctx, project.ID, &bob.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := s.DeleteProject(ctx, project.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	// Still there for the owner.
	got, err = s.GetProject(ctx, project.ID, &alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	listed, err := s.ListProjects(ctx, bob.ID, nil, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "owner")
	project := createTestProject(t, s, user.ID, "Doomed")
	task := createTestTask(t, s, project.ID, "inside")
	tag := createTestTag(t, s, user.ID, "linked")
	_, err := s.AddTagToTask(ctx, task.ID, tag.ID, user.ID)
	require.NoError(t, err)

	deleted, err := s.DeleteProject(ctx, project.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	gotTask, err := s.GetTask(ctx, task.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, gotTask)

	// The tag survives, only the association goes.
	gotTag, err := s.GetTag(ctx, tag.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, gotTag)
}
