package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenithtask/zenithtask/api/middleware"
	"github.com/zenithtask/zenithtask/pkg/repository"
	"gorm.io/datatypes"
)

// ListUsers retrieves a page of users.
func (h *Handler) ListUsers(c *gin.Context) {
	skip, limit := pagination(c)
	users, err := h.store.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser retrieves a single user by ID.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateMe updates the authenticated user's profile. Password changes go
// through UpdatePassword.
func (h *Handler) UpdateMe(c *gin.Context) {
	var update repository.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	if update.Email != nil && *update.Email != user.Email {
		existing, err := h.store.GetUserByEmail(ctx, *update.Email)
		if err != nil {
			writeStoreError(c, err)
			return
		}
		if existing != nil && existing.ID != user.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use by another account"})
			return
		}
	}
	if update.Username != nil && *update.Username != user.Username {
		existing, err := h.store.GetUserByUsername(ctx, *update.Username)
		if err != nil {
			writeStoreError(c, err)
			return
		}
		if existing != nil && existing.ID != user.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}
	}

	updated, err := h.store.UpdateUser(ctx, user, update)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// PasswordUpdateInput DTO for changing the account password
type PasswordUpdateInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdatePassword changes the authenticated user's password after verifying
// the current one.
func (h *Handler) UpdatePassword(c *gin.Context) {
	var input PasswordUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.store.UpdatePassword(c.Request.Context(), user, input.CurrentPassword, input.NewPassword)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect current password"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPreferences returns the authenticated user's preferences blob.
func (h *Handler) GetPreferences(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if len(user.Preferences) == 0 {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.Data(http.StatusOK, "application/json", user.Preferences)
}

// UpdatePreferences replaces the authenticated user's preferences blob.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var prefs map[string]any
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.store.UpdatePreferences(c.Request.Context(), user, datatypes.JSON(raw))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", updated.Preferences)
}
