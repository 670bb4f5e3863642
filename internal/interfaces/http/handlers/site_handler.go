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

// SiteHandler serves the site CRUD and access-grant endpoints. Creating a
// site also reports the bootstrap outcome; a failed bootstrap is rendered as
// a warning on a successful creation, never as an error.
type SiteHandler struct {
	siteService service.SiteAppService
	metrics     *monitoring.Metrics
	logger      logger.Logger
}

// NewSiteHandler creates the site handler.
func NewSiteHandler(siteService service.SiteAppService, metrics *monitoring.Metrics, log logger.Logger) *SiteHandler {
	return &SiteHandler{
		siteService: siteService,
		metrics:     metrics,
		logger:      log.WithComponent("site_handler"),
	}
}

// Create handles POST /api/v1/sites.
func (h *SiteHandler) Create(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.siteService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	if resp.Bootstrap != nil {
		h.metrics.RecordBootstrap(string(resp.Bootstrap.Path))
		if resp.Bootstrap.Warning != "" {
			dto.SendSuccessWithWarning(c, http.StatusCreated, resp, resp.Bootstrap.Warning)
			return
		}
	}
	dto.SendSuccess(c, http.StatusCreated, resp)
}

// List handles GET /api/v1/sites.
func (h *SiteHandler) List(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	items, err := h.siteService.List(c.Request.Context(), principal, q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, items)
}

// Get handles GET /api/v1/sites/:id.
func (h *SiteHandler) Get(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.siteService.Get(c.Request.Context(), principal, id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Update handles PUT /api/v1/sites/:id.
func (h *SiteHandler) Update(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.siteService.Update(c.Request.Context(), principal, id, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/sites/:id.
func (h *SiteHandler) Delete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.siteService.Delete(c.Request.Context(), principal, id); err != nil {
		dto.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete handles POST /api/v1/sites/bulk-delete.
func (h *SiteHandler) BulkDelete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	result, err := h.siteService.BulkDelete(c.Request.Context(), principal, req.IDs)
	if result != nil {
		h.metrics.RecordBulkDelete("site", result.Deleted, result.Failed)
	}
	sendBulkResult(c, result, err)
}

// GrantAccess handles POST /api/v1/sites/:id/access/:user_id.
func (h *SiteHandler) GrantAccess(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	if err := h.siteService.GrantAccess(c.Request.Context(), principal, userID, siteID); err != nil {
		dto.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RevokeAccess handles DELETE /api/v1/sites/:id/access/:user_id.
func (h *SiteHandler) RevokeAccess(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	siteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	if err := h.siteService.RevokeAccess(c.Request.Context(), principal, userID, siteID); err != nil {
		dto.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
