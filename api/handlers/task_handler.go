package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenithtask/zenithtask/api/middleware"
	"github.com/zenithtask/zenithtask/pkg/repository"
)

// checkParentTask verifies that a supplied parent task is reachable by the
// user and lives in the given project. Writes the error response and returns
// false when it is not.
func (h *Handler) checkParentTask(c *gin.Context, ctx context.Context, userID, parentID, projectID uint) bool {
	parent, err := h.store.GetTask(ctx, parentID, &userID)
	if err != nil {
		writeStoreError(c, err)
		return false
	}
	if parent == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent task not found or not accessible"})
		return false
	}
	if parent.ProjectID != projectID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent task belongs to a different project"})
		return false
	}
	return true
}

// CreateTask creates a new task. The project named in the payload must
// belong to the current user, and so must any parent task.
func (h *Handler) CreateTask(c *gin.Context) {
	var input repository.TaskCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	project, err := h.store.GetProject(ctx, input.ProjectID, &user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found or not accessible"})
		return
	}
	if input.ParentTaskID != nil && !h.checkParentTask(c, ctx, user.ID, *input.ParentTaskID, input.ProjectID) {
		return
	}

	task, err := h.store.CreateTask(ctx, input)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// ListTasks retrieves the current user's tasks with optional filters.
func (h *Handler) ListTasks(c *gin.Context) {
	var filter repository.TaskFilter
	var err error
	filter.ProjectID, err = queryUint(c, "project_id")
	if err == nil {
		filter.Completed, err = queryBool(c, "completed")
	}
	if err == nil {
		filter.Priority, err = queryInt(c, "priority")
	}
	if err == nil {
		filter.DueAfter, err = queryTime(c, "due_date_start")
	}
	if err == nil {
		filter.DueBefore, err = queryTime(c, "due_date_end")
	}
	if err == nil {
		filter.ParentTaskID, err = queryUint(c, "parent_task_id")
	}
	if err == nil {
		filter.IsRecurring, err = queryBool(c, "is_recurring")
	}
	if err == nil {
		filter.TagIDs, err = queryUintList(c, "tag_ids")
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid filter parameter"})
		return
	}
	filter.Skip, filter.Limit = pagination(c)

	user := middleware.CurrentUser(c)
	tasks, err := h.store.ListTasks(c.Request.Context(), user.ID, filter)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTask retrieves a single task reachable by the current user.
func (h *Handler) GetTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	task, err := h.store.GetTask(c.Request.Context(), id, &user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or not accessible"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask updates a task reachable by the current user. Moving the task
// to another project requires owning that project too.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	task, err := h.store.GetTask(ctx, id, &user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or not accessible"})
		return
	}

	var update repository.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if update.ProjectID != nil && *update.ProjectID != task.ProjectID {
		project, err := h.store.GetProject(ctx, *update.ProjectID, &user.ID)
		if err != nil {
			writeStoreError(c, err)
			return
		}
		if project == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "New project not found or not accessible"})
			return
		}
	}

	if update.ParentTaskID != nil {
		projectID := task.ProjectID
		if update.ProjectID != nil {
			projectID = *update.ProjectID
		}
		if !h.checkParentTask(c, ctx, user.ID, *update.ParentTaskID, projectID) {
			return
		}
	}

	updated, err := h.store.UpdateTask(ctx, task, update)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTask deletes a task reachable by the current user.
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	deleted, err := h.store.DeleteTask(c.Request.Context(), id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if deleted == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or not accessible"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderTasks applies a batch of order/status/project changes. The batch is
// all-or-nothing: one unreachable task or project fails the whole request.
func (h *Handler) ReorderTasks(c *gin.Context) {
	var items []repository.TaskReorderItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.store.ReorderTasks(c.Request.Context(), items, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotOwned) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CreateSubtask is a reserved route: subtask creation goes through the
// regular task create with parent_task_id for now. The parent and project
// checks still run so callers get the real error before the 501.
func (h *Handler) CreateSubtask(c *gin.Context) {
	parentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input repository.TaskCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	parent, err := h.store.GetTask(ctx, parentID, &user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if parent == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent task not found or not accessible"})
		return
	}
	if input.ProjectID != parent.ProjectID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subtask must belong to the same project as its parent"})
		return
	}

	c.JSON(http.StatusNotImplemented, gin.H{"error": "Subtask creation not implemented; create a task with parent_task_id instead"})
}

// AddTagToTask links one of the user's tags to one of the user's tasks.
func (h *Handler) AddTagToTask(c *gin.Context) {
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}
	tagID, ok := paramID(c, "tag_id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	task, err := h.store.AddTagToTask(c.Request.Context(), taskID, tagID, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task or tag not found or not accessible"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// RemoveTagFromTask unlinks a tag from a task. Unlinking a pair that was
// never linked is a no-op.
func (h *Handler) RemoveTagFromTask(c *gin.Context) {
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}
	tagID, ok := paramID(c, "tag_id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	task, err := h.store.RemoveTagFromTask(c.Request.Context(), taskID, tagID, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task or tag not found or not accessible"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTaskTags returns the tags linked to a task. An unreachable task is a
// 404, not an empty list.
func (h *Handler) ListTaskTags(c *gin.Context) {
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	task, err := h.store.GetTask(ctx, taskID, &user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or not accessible"})
		return
	}

	tags, err := h.store.GetTagsForTask(ctx, taskID, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
