package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/application/service"
	"github.com/resguardo/resguardo/internal/infrastructure/monitoring"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// ThreatHandler serves the threat CRUD endpoints.
type ThreatHandler struct {
	threatService service.ThreatAppService
	metrics       *monitoring.Metrics
	logger        logger.Logger
}

// NewThreatHandler creates the threat handler.
func NewThreatHandler(threatService service.ThreatAppService, metrics *monitoring.Metrics, log logger.Logger) *ThreatHandler {
	return &ThreatHandler{
		threatService: threatService,
		metrics:       metrics,
		logger:        log.WithComponent("threat_handler"),
	}
}

// Create handles POST /api/v1/threats.
func (h *ThreatHandler) Create(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateThreatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.threatService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, resp)
}

// List handles GET /api/v1/threats.
func (h *ThreatHandler) List(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	items, err := h.threatService.List(c.Request.Context(), principal, q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, items)
}

// Get handles GET /api/v1/threats/:id.
func (h *ThreatHandler) Get(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.threatService.Get(c.Request.Context(), principal, id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Update handles PUT /api/v1/threats/:id.
func (h *ThreatHandler) Update(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateThreatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.threatService.Update(c.Request.Context(), principal, id, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/threats/:id.
func (h *ThreatHandler) Delete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.threatService.Delete(c.Request.Context(), principal, id); err != nil {
		dto.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete handles POST /api/v1/threats/bulk-delete.
func (h *ThreatHandler) BulkDelete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	result, err := h.threatService.BulkDelete(c.Request.Context(), principal, req.IDs)
	if result != nil {
		h.metrics.RecordBulkDelete("threat", result.Deleted, result.Failed)
	}
	sendBulkResult(c, result, err)
}
