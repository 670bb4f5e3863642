// Package dto defines the request and response shapes of the HTTP API and
// the shared response envelope.
package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resguardo/resguardo/pkg/errors"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Warning   string      `json:"warning,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO is the serialized form of an application error.
type ErrorDTO struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// SendSuccess writes a success envelope with the given status and payload.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, &APIResponse{
		Success:   true,
		Data:      data,
		TraceID:   traceID(c),
		Timestamp: time.Now().Unix(),
	})
}

// SendSuccessWithWarning writes a success envelope carrying a non-fatal
// warning, used when an external collaborator failed but the primary
// operation committed.
func SendSuccessWithWarning(c *gin.Context, status int, data interface{}, warning string) {
	c.JSON(status, &APIResponse{
		Success:   true,
		Data:      data,
		Warning:   warning,
		TraceID:   traceID(c),
		Timestamp: time.Now().Unix(),
	})
}

// SendError writes an error envelope, mapping AppError codes to HTTP status.
func SendError(c *gin.Context, err error) {
	errorDTO := &ErrorDTO{
		Code:    string(errors.CodeInternal),
		Message: "internal server error",
	}
	if appErr, ok := errors.AsAppError(err); ok {
		errorDTO = &ErrorDTO{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}
	c.JSON(errors.HTTPStatus(err), &APIResponse{
		Success:   false,
		Error:     errorDTO,
		TraceID:   traceID(c),
		Timestamp: time.Now().Unix(),
	})
}
