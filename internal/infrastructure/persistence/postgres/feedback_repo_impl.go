package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/domain/repository"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// FeedbackRepoImpl implements the write-only FeedbackRepository using GORM.
type FeedbackRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewFeedbackRepository creates a PostgreSQL-backed feedback repository.
func NewFeedbackRepository(db *gorm.DB, log logger.Logger) repository.FeedbackRepository {
	return &FeedbackRepoImpl{db: db, logger: log.WithComponent("feedback_repo")}
}

func (r *FeedbackRepoImpl) Save(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		r.logger.Error(ctx, "failed to store feedback", err, logger.Fields{"type": feedback.Type})
		return errors.ErrDatabaseOperation.WithError(err)
	}
	return nil
}
