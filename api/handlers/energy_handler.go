package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenithtask/zenithtask/api/middleware"
	"github.com/zenithtask/zenithtask/pkg/repository"
)

// CreateEnergyLog records an energy level for the current user.
func (h *Handler) CreateEnergyLog(c *gin.Context) {
	var input repository.EnergyLogCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	log, err := h.store.CreateEnergyLog(c.Request.Context(), input, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

// ListEnergyLogs retrieves the current user's energy logs with optional
// filters.
func (h *Handler) ListEnergyLogs(c *gin.Context) {
	var filter repository.EnergyLogFilter
	var err error
	filter.EnergyLevel, err = queryInt(c, "energy_level")
	if err == nil {
		filter.After, err = queryTime(c, "timestamp_after")
	}
	if err == nil {
		filter.Before, err = queryTime(c, "timestamp_before")
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid filter parameter"})
		return
	}
	filter.Skip, filter.Limit = pagination(c)

	user := middleware.CurrentUser(c)
	logs, err := h.store.ListEnergyLogs(c.Request.Context(), user.ID, filter)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetEnergyLog retrieves a single energy log owned by the current user.
func (h *Handler) GetEnergyLog(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	log, err := h.store.GetEnergyLog(c.Request.Context(), id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Energy log not found"})
		return
	}
	c.JSON(http.StatusOK, log)
}

// UpdateEnergyLog updates an energy log owned by the current user.
func (h *Handler) UpdateEnergyLog(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)
	log, err := h.store.GetEnergyLog(ctx, id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Energy log not found"})
		return
	}

	var update repository.EnergyLogUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateEnergyLog(ctx, log, update)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEnergyLog deletes an energy log owned by the current user.
func (h *Handler) DeleteEnergyLog(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	deleted, err := h.store.DeleteEnergyLog(c.Request.Context(), id, user.ID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if deleted == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Energy log not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
