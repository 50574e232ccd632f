package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenithtask/zenithtask/api/middleware"
	"github.com/zenithtask/zenithtask/pkg/repository"
)

// CreateProject creates a new project for the current user.
func (h *Handler) CreateProject(c *gin.Context) {
	var input repository.ProjectCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	project, err := h.store.CreateProject(c.Request.Context(), input, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// ListProjects retrieves the current user's projects. Archived projects are
// hidden unless the archived filter says otherwise.
func (h *Handler) ListProjects(c *gin.Context) {
	archived, err := queryBool(c, "archived")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid archived filter"})
		return
	}
	if archived == nil {
		notArchived := false
		archived = &notArchived
	}
	skip, limit := pagination(c)

	user := middleware.CurrentUser(c)
	projects, err := h.store.ListProjects(c.Request.Context(), user.ID, archived, skip, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject retrieves a single project owned by the current user.
func (h *Handler) GetProject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	project, err := h.store.GetProject(c.Request.Context(), id, &user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject updates a project owned by the current user.
func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	project, err := h.store.GetProject(ctx, id, &user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var update repository.ProjectUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateProject(ctx, project, update)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProject deletes a project owned by the current user, cascading to
// its tasks.
func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	deleted, err := h.store.DeleteProject(c.Request.Context(), id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if deleted == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
