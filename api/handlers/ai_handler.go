package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PredictInput DTO for the prediction endpoint
type PredictInput struct {
	TextInput string `json:"text_input" binding:"required"`
}

// PredictResponse is the placeholder model output.
type PredictResponse struct {
	Prediction string   `json:"prediction"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Predict is a placeholder for the AI service integration; it echoes a
// canned response until a real model is wired in.
func (h *Handler) Predict(c *gin.Context) {
	var input PredictInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	text := input.TextInput
	if runes := []rune(text); len(runes) > 50 {
		text = string(runes[:50])
	}
	confidence := 0.95
	c.JSON(http.StatusOK, PredictResponse{
		Prediction: "Processed text: " + text + "...",
		Confidence: &confidence,
	})
}
