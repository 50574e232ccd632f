package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenithtask/zenithtask/internal/auth"
)

// RegisterInput DTO for creating a new account
type RegisterInput struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register creates a new user account.
func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if existing, err := h.store.GetUserByEmail(ctx, input.Email); err != nil {
		writeStoreError(c, err)
		return
	} else if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}
	if existing, err := h.store.GetUserByUsername(ctx, input.Username); err != nil {
		writeStoreError(c, err)
		return
	} else if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
		return
	}

	user, err := h.store.CreateUser(ctx, input.Username, input.Email, input.Password)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// LoginInput DTO for requesting an access token
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates by username or email and issues a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.GetUserByUsername(ctx, input.Username)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if user == nil {
		// The login field may carry an email instead of a username.
		user, err = h.store.GetUserByEmail(ctx, input.Username)
		if err != nil {
			writeStoreError(c, err)
			return
		}
	}

	if user == nil || !auth.CheckPassword(input.Password, user.HashedPassword) {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
