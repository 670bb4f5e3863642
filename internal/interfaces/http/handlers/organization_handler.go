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

// OrganizationHandler serves the organization CRUD endpoints.
type OrganizationHandler struct {
	orgService service.OrganizationAppService
	metrics    *monitoring.Metrics
	logger     logger.Logger
}

// NewOrganizationHandler creates the organization handler.
func NewOrganizationHandler(orgService service.OrganizationAppService, metrics *monitoring.Metrics, log logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		metrics:    metrics,
		logger:     log.WithComponent("organization_handler"),
	}
}

// Create handles POST /api/v1/organizations.
func (h *OrganizationHandler) Create(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.orgService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, resp)
}

// List handles GET /api/v1/organizations.
func (h *OrganizationHandler) List(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	items, err := h.orgService.List(c.Request.Context(), principal, q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, items)
}

// Get handles GET /api/v1/organizations/:id.
func (h *OrganizationHandler) Get(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.orgService.Get(c.Request.Context(), principal, id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Update handles PUT /api/v1/organizations/:id.
func (h *OrganizationHandler) Update(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.orgService.Update(c.Request.Context(), principal, id, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/organizations/:id.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.orgService.Delete(c.Request.Context(), principal, id); err != nil {
		dto.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete handles POST /api/v1/organizations/bulk-delete.
func (h *OrganizationHandler) BulkDelete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	result, err := h.orgService.BulkDelete(c.Request.Context(), principal, req.IDs)
	if result != nil {
		h.metrics.RecordBulkDelete("organization", result.Deleted, result.Failed)
	}
	sendBulkResult(c, result, err)
}
