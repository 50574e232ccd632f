package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTagUniquePerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	first, err := s.CreateTag(ctx, TagCreate{Name: "urgent"}, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Same user, same name: rejected.
	_, err = s.CreateTag(ctx, TagCreate{Name: "urgent"}, alice.ID)
	assert.ErrorIs(t, err, ErrDuplicateTagName)

	// Another user may reuse the name.
	second, err := s.CreateTag(ctx, TagCreate{Name: "urgent"}, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateTagRename(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "renamer")
	urgent := createTestTag(t, s, user.ID, "urgent")
	createTestTag(t, s, user.ID, "later")

	// Renaming to an existing name of the same user collides.
	_, err := s.UpdateTag(ctx, urgent, TagUpdate{Name: strPtr("later")})
	assert.ErrorIs(t, err, ErrDuplicateTagName)

	// Renaming to its own current name is not a collision.
	urgent, err = s.GetTag(ctx, urgent.ID, user.ID)
	require.NoError(t, err)
	updated, err := s.UpdateTag(ctx, urgent, TagUpdate{Name: strPtr("urgent"), Color: strPtr("#ff0000")})
	require.NoError(t, err)
	assert.Equal(t, "urgent", updated.Name)
	require.NotNil(t, updated.Color)
	assert.Equal(t, "#ff0000", *updated.Color)
}

func TestTagScopedVisibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	tag := createTestTag(t, s, alice.ID, "private")

	got, err := s.GetTag(ctx, tag.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := s.DeleteTag(ctx, tag.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	got, err = s.GetTag(ctx, tag.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestAddTagToTaskIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "linker")
	project := createTestProject(t, s, user.ID, "Links")
	task := createTestTask(t, s, project.ID, "tagged")
	tag := createTestTag(t, s, user.ID, "focus")

	got, err := s.AddTagToTask(ctx, task.ID, tag.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Linking again leaves exactly one association.
	got, err = s.AddTagToTask(ctx, task.ID, tag.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	tags, err := s.GetTagsForTask(ctx, task.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, tag.ID, tags[0].ID)
}

func TestRemoveTagFromTaskIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "unlinker")
	project := createTestProject(t, s, user.ID, "Links")
	task := createTestTask(t, s, project.ID, "tagged")
	tag := createTestTag(t, s, user.ID, "focus")

	// Removing a never-linked pair is a no-op, not an error.
	got, err := s.RemoveTagFromTask(ctx, task.ID, tag.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	_, err = s.AddTagToTask(ctx, task.ID, tag.ID, user.ID)
	require.NoError(t, err)
	_, err = s.RemoveTagFromTask(ctx, task.ID, tag.ID, user.ID)
	require.NoError(t, err)

	tags, err := s.GetTagsForTask(ctx, task.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagAssociationCrossUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	project := createTestProject(t, s, alice.ID, "Hers")
	task := createTestTask(t, s, project.ID, "hers")
	aliceTag := createTestTag(t, s, alice.ID, "hers")
	bobTag := createTestTag(t, s, bob.ID, "his")

	// Bob cannot link anything onto Alice's task.
	got, err := s.AddTagToTask(ctx, task.ID, bobTag.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Alice cannot link Bob's tag either; nothing is partially linked.
	got, err = s.AddTagToTask(ctx, task.ID, bobTag.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	tags, err := s.GetTagsForTask(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)

	// An invisible task reads as having no tags at all.
	_, err = s.AddTagToTask(ctx, task.ID, aliceTag.ID, alice.ID)
	require.NoError(t, err)
	tags, err = s.GetTagsForTask(ctx, task.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestDeleteTagRemovesAssociations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "cleaner")
	project := createTestProject(t, s, user.ID, "Cleanup")
	task := createTestTask(t, s, project.ID, "tagged")
	tag := createTestTag(t, s, user.ID, "gone")

	_, err := s.AddTagToTask(ctx, task.ID, tag.ID, user.ID)
	require.NoError(t, err)

	deleted, err := s.DeleteTag(ctx, tag.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	tags, err := s.GetTagsForTask(ctx, task.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
