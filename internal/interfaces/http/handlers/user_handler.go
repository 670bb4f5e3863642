package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/application/service"
	"github.com/resguardo/resguardo/internal/infrastructure/monitoring"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// maxAvatarBytes bounds avatar uploads before they reach the object store.
const maxAvatarBytes = 2 << 20

// UserHandler serves the user management endpoints. Account creation is
// delegated to the external provisioner; the console only mirrors profiles.
type UserHandler struct {
	userService service.UserAppService
	metrics     *monitoring.Metrics
	logger      logger.Logger
}

// NewUserHandler creates the user handler.
func NewUserHandler(userService service.UserAppService, metrics *monitoring.Metrics, log logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		metrics:     metrics,
		logger:      log.WithComponent("user_handler"),
	}
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.userService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.CodeExternalService {
			h.metrics.RecordExternalError("provisioning")
		}
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, resp)
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	items, err := h.userService.List(c.Request.Context(), principal, q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, items)
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.userService.Get(c.Request.Context(), principal, id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Update handles PUT /api/v1/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.userService.Update(c.Request.Context(), principal, id, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), principal, id); err != nil {
		dto.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete handles POST /api/v1/users/bulk-delete.
func (h *UserHandler) BulkDelete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	result, err := h.userService.BulkDelete(c.Request.Context(), principal, req.IDs)
	if result != nil {
		h.metrics.RecordBulkDelete("user", result.Deleted, result.Failed)
	}
	sendBulkResult(c, result, err)
}

// UploadAvatar handles POST /api/v1/users/:id/avatar. The image travels as
// the "avatar" multipart field.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage("avatar file required"))
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage("avatar exceeds 2MB"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage("unreadable avatar file"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage("unreadable avatar file"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.userService.UploadAvatar(c.Request.Context(), principal, id, content, contentType)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.CodeExternalService {
			h.metrics.RecordExternalError("storage")
		}
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}
