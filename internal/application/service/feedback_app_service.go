package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/domain/repository"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// FeedbackAppService records console feedback. Write-only: submissions are
// stored and never served back.
type FeedbackAppService interface {
	Create(ctx context.Context, principal models.Principal, req *dto.CreateFeedbackRequest) (*dto.CreateFeedbackResponse, error)
}

type feedbackAppService struct {
	feedbackRepo repository.FeedbackRepository
	logger       logger.Logger
}

// NewFeedbackAppService creates the feedback application service.
func NewFeedbackAppService(feedbackRepo repository.FeedbackRepository, log logger.Logger) FeedbackAppService {
	return &feedbackAppService{
		feedbackRepo: feedbackRepo,
		logger:       log.WithComponent("feedback_service"),
	}
}

func (s *feedbackAppService) Create(ctx context.Context, principal models.Principal, req *dto.CreateFeedbackRequest) (*dto.CreateFeedbackResponse, error) {
	feedback := &models.Feedback{
		ID:          uuid.New(),
		UserID:      principal.UserID,
		UserEmail:   principal.Email,
		Type:        req.Type,
		Description: req.Description,
		Rating:      req.Rating,
		Context:     req.Context,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.feedbackRepo.Save(ctx, feedback); err != nil {
		s.logger.Error(ctx, "failed to store feedback", err, logger.Fields{"type": req.Type})
		return nil, errors.ErrDatabaseOperation.WithMessage("failed to store feedback").WithError(err)
	}
	return &dto.CreateFeedbackResponse{ID: feedback.ID}, nil
}
