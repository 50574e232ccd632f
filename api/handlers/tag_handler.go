package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenithtask/zenithtask/api/middleware"
	"github.com/zenithtask/zenithtask/pkg/repository"
)

// CreateTag creates a new tag for the current user. Tag names are unique
// per user.
func (h *Handler) CreateTag(c *gin.Context) {
	var input repository.TagCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	tag, err := h.store.CreateTag(c.Request.Context(), input, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// ListTags retrieves the current user's tags.
func (h *Handler) ListTags(c *gin.Context) {
	skip, limit := pagination(c)
	user := middleware.CurrentUser(c)
	tags, err := h.store.ListTags(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag retrieves a single tag owned by the current user.
func (h *Handler) GetTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	tag, err := h.store.GetTag(c.Request.Context(), id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if tag == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}
	c.JSON(http.StatusOK, tag)
}

// UpdateTag updates a tag owned by the current user, keeping the per-user
// name uniqueness.
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	tag, err := h.store.GetTag(ctx, id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if tag == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	var update repository.TagUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateTag(ctx, tag, update)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTag deletes a tag owned by the current user; its task associations
// go with it.
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	deleted, err := h.store.DeleteTag(c.Request.Context(), id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if deleted == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
