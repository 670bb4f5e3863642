package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/application/service"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// FeedbackHandler serves the feedback submission endpoint, open to every
// authenticated role.
type FeedbackHandler struct {
	feedbackService service.FeedbackAppService
	logger          logger.Logger
}

// NewFeedbackHandler creates the feedback handler.
func NewFeedbackHandler(feedbackService service.FeedbackAppService, log logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          log.WithComponent("feedback_handler"),
	}
}

// Create handles POST /api/v1/feedback.
func (h *FeedbackHandler) Create(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.feedbackService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, resp)
}
