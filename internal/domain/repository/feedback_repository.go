package repository

import (
	"context"

	"github.com/resguardo/resguardo/internal/domain/models"
)

// FeedbackRepository defines the write-only interface for feedback storage.
type FeedbackRepository interface {
	Save(ctx context.Context, feedback *models.Feedback) error
}
