package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenithtask/zenithtask/api/middleware"
	"github.com/zenithtask/zenithtask/pkg/models"
	"github.com/zenithtask/zenithtask/pkg/repository"
)

// CreateFocusSession starts a focus session for the current user. A linked
// task must be reachable by the user.
func (h *Handler) CreateFocusSession(c *gin.Context) {
	var input repository.FocusSessionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	if input.TaskID != nil {
		task, err := h.store.GetTask(ctx, *input.TaskID, &user.ID)
		if err != nil {
			writeStoreError(c, err)
			return
		}
		if task == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or not accessible"})
			return
		}
	}

	session, err := h.store.CreateFocusSession(ctx, input, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListFocusSessions retrieves the current user's focus sessions with
// optional filters.
func (h *Handler) ListFocusSessions(c *gin.Context) {
	var filter repository.FocusSessionFilter
	var err error
	filter.TaskID, err = queryUint(c, "task_id")
	if err == nil {
		filter.StartAfter, err = queryTime(c, "start_time_after")
	}
	if err == nil {
		filter.StartBefore, err = queryTime(c, "start_time_before")
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid filter parameter"})
		return
	}
	if raw, ok := c.GetQuery("status"); ok && raw != "" {
		status := models.FocusSessionStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid status filter"})
			return
		}
		filter.Status = &status
	}
	filter.Skip, filter.Limit = pagination(c)

	user := middleware.CurrentUser(c)
	sessions, err := h.store.ListFocusSessions(c.Request.Context(), user.ID, filter)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetFocusSession retrieves a single focus session owned by the current user.
func (h *Handler) GetFocusSession(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	session, err := h.store.GetFocusSession(c.Request.Context(), id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Focus session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateFocusSession updates a focus session owned by the current user.
func (h *Handler) UpdateFocusSession(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	session, err := h.store.GetFocusSession(ctx, id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Focus session not found"})
		return
	}

	var update repository.FocusSessionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateFocusSession(ctx, session, update)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteFocusSession deletes a focus session owned by the current user.
func (h *Handler) DeleteFocusSession(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	deleted, err := h.store.DeleteFocusSession(c.Request.Context(), id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if deleted == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Focus session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
