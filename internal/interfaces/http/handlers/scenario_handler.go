package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/application/service"
	"github.com/resguardo/resguardo/internal/infrastructure/monitoring"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// ScenarioHandler serves the scenario endpoints, including the pairing
// wizard: options first, then the batch commit of the selected threats.
type ScenarioHandler struct {
	scenarioService service.ScenarioAppService
	metrics         *monitoring.Metrics
	logger          logger.Logger
}

// NewScenarioHandler creates the scenario handler.
func NewScenarioHandler(scenarioService service.ScenarioAppService, metrics *monitoring.Metrics, log logger.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioService: scenarioService,
		metrics:         metrics,
		logger:          log.WithComponent("scenario_handler"),
	}
}

// PairingOptions handles GET /api/v1/scenarios/pairing-options.
func (h *ScenarioHandler) PairingOptions(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.PairingOptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.scenarioService.PairingOptions(c.Request.Context(), principal, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// CreateBatch handles POST /api/v1/scenarios. One scenario is created per
// selected threat; already paired threats are skipped, and a partial insert
// failure is reported next to the counts.
func (h *ScenarioHandler) CreateBatch(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateScenariosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.scenarioService.CreatePairs(c.Request.Context(), principal, &req)
	if err != nil {
		appErr, ok := errors.AsAppError(err)
		if !ok || appErr.Code != errors.CodePartialFailure || resp == nil {
			dto.SendError(c, err)
			return
		}
		c.JSON(http.StatusMultiStatus, &dto.APIResponse{
			Success: false,
			Data:    resp,
			Error: &dto.ErrorDTO{
				Code:    string(appErr.Code),
				Message: appErr.Message,
				Details: appErr.Details,
			},
			Timestamp: time.Now().Unix(),
		})
		return
	}
	dto.SendSuccess(c, http.StatusCreated, resp)
}

// Update handles PUT /api/v1/scenarios/:id.
func (h *ScenarioHandler) Update(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	resp, err := h.scenarioService.UpdateStatus(c.Request.Context(), principal, id, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// List handles GET /api/v1/scenarios.
func (h *ScenarioHandler) List(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	items, err := h.scenarioService.List(c.Request.Context(), principal, q)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, items)
}

// Get handles GET /api/v1/scenarios/:id.
func (h *ScenarioHandler) Get(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.scenarioService.Get(c.Request.Context(), principal, id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/scenarios/:id.
func (h *ScenarioHandler) Delete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.scenarioService.Delete(c.Request.Context(), principal, id); err != nil {
		dto.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete handles POST /api/v1/scenarios/bulk-delete.
func (h *ScenarioHandler) BulkDelete(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}
	result, err := h.scenarioService.BulkDelete(c.Request.Context(), principal, req.IDs)
	if result != nil {
		h.metrics.RecordBulkDelete("scenario", result.Deleted, result.Failed)
	}
	sendBulkResult(c, result, err)
}
