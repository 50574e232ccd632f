package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithtask/zenithtask/pkg/models"
)

func TestGetTaskOwnershipScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner")
	other := createTestUser(t, s, "other")
	project := createTestProject(t, s, owner.ID, "Inbox")
	task := createTestTask(t, s, project.ID, "Write report")

	got, err := s.GetTask(ctx, task.ID, &owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, task.ID, got.ID)

	// The same task reads as absent for anyone else.
	got, err = s.GetTask(ctx, task.ID, &other.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Unscoped lookup still resolves it.
	got, err = s.GetTask(ctx, task.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestCreateTaskRequiresProject(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateTask(context.Background(), TaskCreate{Title: "orphan"})
	assert.ErrorIs(t, err, ErrProjectRequired)
}

func TestListTasksSortOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "sorter")
	project := createTestProject(t, s, user.ID, "Ordered")

	day := func(d int) *time.Time {
		return timePtr(time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC))
	}

	// Same order slot: priority decides, then due date, then creation time.
	mk := func(title string, order float64, priority int, due *time.Time) uint {
		task, err := s.CreateTask(ctx, TaskCreate{
			Title:       title,
			ProjectID:   project.ID,
			Priority:    priority,
			DueDate:     due,
			OrderInList: floatPtr(order),
		})
		require.NoError(t, err)
		return task.ID
	}

	d := mk("d", 2.0, 2, day(1))
	a := mk("a", 1.0, 2, day(5))
	b := mk("b", 1.0, 0, day(1))
	c := mk("c", 1.0, 2, day(9))
	e := mk("e", 1.0, 2, day(5)) // ties with a on everything except creation

	tasks, err := s.ListTasks(ctx, user.ID, TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	got := make([]uint, len(tasks))
	for i, task := range tasks {
		got[i] = task.ID
	}
	assert.Equal(t, []uint{a, e, c, b, d}, got)
}

func TestListTasksFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "filterer")
	other := createTestUser(t, s, "outsider")
	p1 := createTestProject(t, s, user.ID, "One")
	p2 := createTestProject(t, s, user.ID, "Two")
	foreign := createTestProject(t, s, other.ID, "Foreign")

	t1, err := s.CreateTask(ctx, TaskCreate{Title: "done high", ProjectID: p1.ID, Priority: 2})
	require.NoError(t, err)
	_, err = s.UpdateTask(ctx, t1, TaskUpdate{Completed: boolPtr(true)})
	require.NoError(t, err)

	t2, err := s.CreateTask(ctx, TaskCreate{
		Title:     "pending low",
		ProjectID: p2.ID,
		DueDate:   timePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	t3, err := s.CreateTask(ctx, TaskCreate{Title: "recurring", ProjectID: p1.ID, IsRecurring: true})
	require.NoError(t, err)

	sub, err := s.CreateTask(ctx, TaskCreate{Title: "child", ProjectID: p1.ID, ParentTaskID: &t3.ID})
	require.NoError(t, err)

	createTestTask(t, s, foreign.ID, "invisible")

	tag := createTestTag(t, s, user.ID, "focus")
	_, err = s.AddTagToTask(ctx, t2.ID, tag.ID, user.ID)
	require.NoError(t, err)

	cases := []struct {
		name   string
		filter TaskFilter
		want   []uint
	}{
		{"all visible", TaskFilter{}, []uint{t1.ID, t2.ID, t3.ID, sub.ID}},
		{"by project", TaskFilter{ProjectID: &p2.ID}, []uint{t2.ID}},
		{"completed", TaskFilter{Completed: boolPtr(true)}, []uint{t1.ID}},
		{"priority", TaskFilter{Priority: intPtr(2)}, []uint{t1.ID}},
		{"recurring", TaskFilter{IsRecurring: boolPtr(true)}, []uint{t3.ID}},
		{"children of t3", TaskFilter{ParentTaskID: &t3.ID}, []uint{sub.ID}},
		{"due before", TaskFilter{DueBefore: timePtr(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))}, []uint{t2.ID}},
		{"due after excludes", TaskFilter{DueAfter: timePtr(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))}, nil},
		{"tagged", TaskFilter{TagIDs: []uint{tag.ID}}, []uint{t2.ID}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tasks, err := s.ListTasks(ctx, user.ID, tc.filter)
			require.NoError(t, err)
			got := make([]uint, 0, len(tasks))
			for _, task := range tasks {
				got = append(got, task.ID)
			}
			assert.ElementsMatch(t, tc.want, got)
		})
	}
}

func TestUpdateTaskPartialPatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "patcher")
	project := createTestProject(t, s, user.ID, "Patchwork")
	task, err := s.CreateTask(ctx, TaskCreate{
		Title:       "original",
		Description: "keep me",
		ProjectID:   project.ID,
		Priority:    1,
	})
	require.NoError(t, err)

	updated, err := s.UpdateTask(ctx, task, TaskUpdate{Title: strPtr("renamed")})
	require.NoError(t, err)

	// Only the supplied field changes.
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, 1, updated.Priority)
	assert.False(t, updated.Completed)
}

func TestDeleteTaskScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "deleter")
	intruder := createTestUser(t, s, "intruder")
	project := createTestProject(t, s, owner.ID, "Mine")
	task := createTestTask(t, s, project.ID, "target")

	deleted, err := s.DeleteTask(ctx, task.ID, intruder.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	// Still there for the owner.
	got, err := s.GetTask(ctx, task.ID, &owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	deleted, err = s.DeleteTask(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	got, err = s.GetTask(ctx, task.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteTaskCascadesSubtasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "parenting")
	project := createTestProject(t, s, user.ID, "Tree")
	parent := createTestTask(t, s, project.ID, "parent")
	child, err := s.CreateTask(ctx, TaskCreate{Title: "child", ProjectID: project.ID, ParentTaskID: &parent.ID})
	require.NoError(t, err)
	grandchild, err := s.CreateTask(ctx, TaskCreate{Title: "grandchild", ProjectID: project.ID, ParentTaskID: &child.ID})
	require.NoError(t, err)

	// Tag links anywhere in the tree go with their tasks.
	tag := createTestTag(t, s, user.ID, "nested")
	_, err = s.AddTagToTask(ctx, child.ID, tag.ID, user.ID)
	require.NoError(t, err)

	_, err = s.DeleteTask(ctx, parent.ID, user.ID)
	require.NoError(t, err)

	for _, id := range []uint{child.ID, grandchild.ID} {
		got, err := s.GetTask(ctx, id, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	var linkCount int64
	require.NoError(t, s.db.Model(&models.TaskTag{}).Where("task_id = ?", child.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)
}

func TestReorderTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "reorderer")
	p1 := createTestProject(t, s, user.ID, "From")
	p2 := createTestProject(t, s, user.ID, "To")
	t1 := createTestTask(t, s, p1.ID, "first")
	t2 := createTestTask(t, s, p1.ID, "second")

	updated, err := s.ReorderTasks(ctx, []TaskReorderItem{
		{TaskID: t1.ID, OrderInList: floatPtr(2.5), Status: strPtr(ReorderStatusCompleted)},
		{TaskID: t2.ID, OrderInList: floatPtr(1.0), ProjectID: &p2.ID},
	}, user.ID)
	require.NoError(t, err)
	require.Len(t, updated, 2)

	got, err := s.GetTask(ctx, t1.ID, &user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OrderInList)
	assert.Equal(t, 2.5, *got.OrderInList)
	assert.True(t, got.Completed)

	got, err = s.GetTask(ctx, t2.ID, &user.ID)
	require.NoError(t, err)
	assert.Equal(t, p2.ID, got.ProjectID)
}

func TestReorderTasksAllOrNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "atomic")
	stranger := createTestUser(t, s, "stranger")
	project := createTestProject(t, s, user.ID, "Batch")
	theirs := createTestProject(t, s, stranger.ID, "Theirs")
	t1 := createTestTask(t, s, project.ID, "ok")
	hidden := createTestTask(t, s, theirs.ID, "hidden")

	// Second item references a task the caller cannot see: whole batch fails.
	_, err := s.ReorderTasks(ctx, []TaskReorderItem{
		{TaskID: t1.ID, OrderInList: floatPtr(9.0)},
		{TaskID: hidden.ID, OrderInList: floatPtr(1.0)},
	}, user.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	// The first item's change was rolled back.
	got, err := s.GetTask(ctx, t1.ID, &user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OrderInList)

	// Moving to a project the caller does not own fails the same way.
	_, err = s.ReorderTasks(ctx, []TaskReorderItem{
		{TaskID: t1.ID, ProjectID: &theirs.ID},
	}, user.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	got, err = s.GetTask(ctx, t1.ID, &user.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ProjectID)
}
