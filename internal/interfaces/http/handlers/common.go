// Package handlers contains the gin HTTP handlers of the console API. Each
// handler binds and validates the request, delegates to an application
// service and renders the shared response envelope.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/interfaces/http/middleware"
	"github.com/resguardo/resguardo/pkg/errors"
)

func principalOrAbort(c *gin.Context) (models.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return models.Principal{}, false
	}
	return principal, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessagef("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func bindListQuery(c *gin.Context) (*dto.ListQuery, bool) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return nil, false
	}
	return &q, true
}

// sendBulkResult renders a bulk delete outcome. A partial failure keeps the
// counts in the payload next to the aggregate error so the console can show
// both.
func sendBulkResult(c *gin.Context, result *dto.BulkDeleteResult, err error) {
	if err == nil {
		dto.SendSuccess(c, http.StatusOK, result)
		return
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.CodePartialFailure {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusMultiStatus, &dto.APIResponse{
		Success: false,
		Data:    result,
		Error: &dto.ErrorDTO{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		},
		Timestamp: time.Now().Unix(),
	})
}
