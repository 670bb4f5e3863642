package dto

import (
	"github.com/google/uuid"
)

// CreateFeedbackRequest records one feedback submission. Write-only.
type CreateFeedbackRequest struct {
	Type        string `json:"type" binding:"required,max=64"`
	Description string `json:"description" binding:"required"`
	Rating      int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Context     string `json:"context" binding:"omitempty,max=255"`
}

// CreateFeedbackResponse acknowledges the stored submission.
type CreateFeedbackResponse struct {
	ID uuid.UUID `json:"id"`
}
