// Package middleware contains the gin middleware chain shared by every
// authenticated route: token verification, permission checks, per-user rate
// limiting and request observability.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/logger"
)

// Claims is the verified token payload the console issues.
type Claims struct {
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

const (
	ctxKeyTokenJTI = "token_jti"
	ctxKeyTokenExp = "token_exp"
)

// extractBearer extracts the token from the Authorization header.
func extractBearer(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireJWT verifies the bearer token, rejects revoked tokens and places the
// resulting principal in both the gin context and the request context.
func RequireJWT(secret []byte, issuer, audience string, revoked service.TokenRevocationStore, log logger.Logger) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	}

	return func(c *gin.Context) {
		tokenStr := extractBearer(c.Request.Header.Get("Authorization"))
		if tokenStr == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc, parserOpts...)
		if err != nil || !token.Valid {
			log.Warn(c.Request.Context(), "token verification failed", logger.Fields{"error": errString(err)})
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Error(c.Request.Context(), "revocation check failed", err, logger.Fields{"jti": claims.ID})
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			if isRevoked {
				log.Warn(c.Request.Context(), "access attempt with revoked token", logger.Fields{"jti": claims.ID})
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
		}

		principal, err := principalFromClaims(claims)
		if err != nil {
			log.Warn(c.Request.Context(), "token carries invalid identity claims", logger.Fields{"error": err.Error()})
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyPrincipal, principal)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(constants.ContextKeyPrincipal), principal)
		if claims.ID != "" {
			c.Set(ctxKeyTokenJTI, claims.ID)
			if claims.ExpiresAt != nil {
				c.Set(ctxKeyTokenExp, claims.ExpiresAt.Time)
			}
		}
		c.Next()
	}
}

func principalFromClaims(claims *Claims) (models.Principal, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.Principal{}, err
	}
	role := constants.Role(claims.Role)
	if !role.IsValid() {
		return models.Principal{}, jwt.ErrTokenInvalidClaims
	}
	principal := models.Principal{
		UserID: userID,
		Email:  claims.Email,
		Role:   role,
	}
	if claims.OrganizationID != "" {
		orgID, err := uuid.Parse(claims.OrganizationID)
		if err != nil {
			return models.Principal{}, err
		}
		principal.OrganizationID = &orgID
	}
	return principal, nil
}

// PrincipalFrom returns the principal stored by RequireJWT.
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(string(constants.ContextKeyPrincipal))
	if !ok {
		return models.Principal{}, false
	}
	principal, ok := v.(models.Principal)
	return principal, ok
}

// TokenFrom returns the jti and expiry of the verified token, when the token
// carried a jti claim.
func TokenFrom(c *gin.Context) (string, time.Time, bool) {
	v, ok := c.Get(ctxKeyTokenJTI)
	if !ok {
		return "", time.Time{}, false
	}
	jti, ok := v.(string)
	if !ok || jti == "" {
		return "", time.Time{}, false
	}
	var exp time.Time
	if e, ok := c.Get(ctxKeyTokenExp); ok {
		if t, ok := e.(time.Time); ok {
			exp = t
		}
	}
	return jti, exp, true
}

func errString(err error) string {
	if err == nil {
		return "token rejected"
	}
	return err.Error()
}
