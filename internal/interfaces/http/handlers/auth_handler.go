package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resguardo/resguardo/internal/application/dto"
	domainservice "github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/internal/interfaces/http/middleware"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// AuthHandler serves the token lifecycle endpoints. Login lives in the hosted
// backend; the console API only handles the revocation side.
type AuthHandler struct {
	revocations domainservice.TokenRevocationStore
	logger      logger.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(revocations domainservice.TokenRevocationStore, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		revocations: revocations,
		logger:      log.WithComponent("auth_handler"),
	}
}

// Logout handles POST /api/v1/auth/logout. The presented token's jti is
// blacklisted until the token would have expired anyway.
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	jti, exp, ok := middleware.TokenFrom(c)
	if !ok {
		dto.SendError(c, errors.ErrInvalidRequest.WithMessage("token carries no jti claim"))
		return
	}

	ttl := time.Until(exp)
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := h.revocations.Revoke(c.Request.Context(), jti, ttl); err != nil {
		h.logger.Error(c.Request.Context(), "failed to revoke token", err, logger.Fields{
			"jti":     jti,
			"user_id": principal.UserID,
		})
		dto.SendError(c, err)
		return
	}

	h.logger.Info(c.Request.Context(), "token revoked", logger.Fields{
		"jti":     jti,
		"user_id": principal.UserID,
	})
	c.Status(http.StatusNoContent)
}
