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

// AssetHandler serves the asset CRUD endpoints.
type AssetHandler struct {
	assetService service.AssetAppService
	metrics      *monitoring.Metrics
	logger       logger.Logger
}

// NewAssetHandler creates the asset handler.
func NewAssetHandler(assetService service.AssetAppService, metrics *monitoring.Metrics, log logger.Logger) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
		metrics:      metrics,
		logger:       log.WithComponent("asset_handler"),
	}
}

// Create handles POST /api/v1/assets.
func (h *AssetHandler) Create(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.assetService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, resp)
}

// List handles GET /api/v1/assets.
func (h *AssetHandler) List(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	items, err := h.assetService.List(c.Request.Context(), principal, q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, items)
}

// Get handles GET /api/v1/assets/:id.
func (h *AssetHandler) Get(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.assetService.Get(c.Request.Context(), principal, id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Update handles PUT /api/v1/assets/:id.
func (h *AssetHandler) Update(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.assetService.Update(c.Request.Context(), principal, id, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/assets/:id.
func (h *AssetHandler) Delete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.assetService.Delete(c.Request.Context(), principal, id); err != nil {
		dto.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete handles POST /api/v1/assets/bulk-delete.
func (h *AssetHandler) BulkDelete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	result, err := h.assetService.BulkDelete(c.Request.Context(), principal, req.IDs)
	if result != nil {
		h.metrics.RecordBulkDelete("asset", result.Deleted, result.Failed)
	}
	sendBulkResult(c, result, err)
}
