package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/application/service"
	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// DashboardHandler serves the per-entity count summary of the home screen.
type DashboardHandler struct {
	dashboardService service.DashboardAppService
	logger           logger.Logger
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardAppService, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           log.WithComponent("dashboard_handler"),
	}
}

// Summary handles GET /api/v1/dashboard/summary.
func (h *DashboardHandler) Summary(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var sel models.Selection
	if raw := c.Query("organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			dto.SendError(c, errors.ErrInvalidRequest.WithMessage("invalid organization_id"))
			return
		}
		sel.OrganizationID = &orgID
	}
	if raw := c.Query("site_id"); raw != "" {
		siteID, err := uuid.Parse(raw)
		if err != nil {
			dto.SendError(c, errors.ErrInvalidRequest.WithMessage("invalid site_id"))
			return
		}
		sel.SiteID = &siteID
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), principal, sel)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, summary)
}
