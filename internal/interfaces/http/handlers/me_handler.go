package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resguardo/resguardo/internal/application/dto"
	domainservice "github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/logger"
)

// MeHandler serves the endpoints describing the authenticated caller.
type MeHandler struct {
	logger logger.Logger
}

// NewMeHandler creates the me handler.
func NewMeHandler(log logger.Logger) *MeHandler {
	return &MeHandler{logger: log.WithComponent("me_handler")}
}

// Me handles GET /api/v1/me.
func (h *MeHandler) Me(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{
		"user_id":         principal.UserID,
		"email":           principal.Email,
		"role":            principal.Role,
		"organization_id": principal.OrganizationID,
	})
}

// Capabilities handles GET /api/v1/me/capabilities. Clients render action
// buttons from this table instead of hardcoding role rules.
func (h *MeHandler) Capabilities(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{
		"role":         principal.Role,
		"capabilities": domainservice.CapabilitiesForRole(principal.Role),
	})
}
