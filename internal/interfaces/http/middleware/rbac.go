package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/logger"
)

// RequireCapability rejects callers whose role may not perform the given
// action on the given entity. It must run after RequireJWT.
func RequireCapability(entity constants.Entity, action constants.Action, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !service.Can(principal.Role, entity, action) {
			log.Warn(c.Request.Context(), "capability denied", logger.Fields{
				"user_id": principal.UserID.String(),
				"role":    string(principal.Role),
				"entity":  string(entity),
				"action":  string(action),
			})
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
