package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/logger"
)

const (
	testSecret   = "unit-test-secret"
	testIssuer   = "resguardo"
	testAudience = "resguardo-console"
)

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s.revoked == nil {
		s.revoked = map[string]bool{}
	}
	s.revoked[jti] = true
	return nil
}

func (s *stubRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

func signToken(t *testing.T, mutate func(*Claims)) string {
	t.Helper()
	claims := &Claims{
		Email: "admin@resguardo.example",
		Role:  string(constants.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			ID:        uuid.NewString(),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authRig(t *testing.T, revocations *stubRevocations) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequireJWT([]byte(testSecret), testIssuer, testAudience, revocations, logger.NewNoopLogger()))
	engine.GET("/probe", func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"role": string(principal.Role)})
	})
	return engine
}

func doRequest(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRequireJWT_AcceptsValidToken(t *testing.T) {
	engine := authRig(t, &stubRevocations{})

	rec := doRequest(engine, signToken(t, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin")
}

func TestRequireJWT_RejectsMissingToken(t *testing.T) {
	engine := authRig(t, &stubRevocations{})

	rec := doRequest(engine, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireJWT_RejectsWrongSecret(t *testing.T) {
	engine := authRig(t, &stubRevocations{})
	claims := &Claims{
		Role: string(constants.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rec := doRequest(engine, forged)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireJWT_RejectsExpiredToken(t *testing.T) {
	engine := authRig(t, &stubRevocations{})
	token := signToken(t, func(c *Claims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	})

	rec := doRequest(engine, token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireJWT_RejectsRevokedToken(t *testing.T) {
	jti := uuid.NewString()
	revocations := &stubRevocations{revoked: map[string]bool{jti: true}}
	engine := authRig(t, revocations)
	token := signToken(t, func(c *Claims) { c.ID = jti })

	rec := doRequest(engine, token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireJWT_RejectsUnknownRole(t *testing.T) {
	engine := authRig(t, &stubRevocations{})
	token := signToken(t, func(c *Claims) { c.Role = "gerente" })

	rec := doRequest(engine, token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireCapability_BlocksReaderMutations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(string(constants.ContextKeyPrincipal), models.Principal{
			UserID: uuid.New(),
			Role:   constants.RoleReader,
		})
	})
	engine.Use(RequireCapability(constants.EntityAsset, constants.ActionCreate, logger.NewNoopLogger()))
	engine.POST("/assets", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/assets", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireCapability_AllowsConsultantAssetCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(string(constants.ContextKeyPrincipal), models.Principal{
			UserID: uuid.New(),
			Role:   constants.RoleConsultant,
		})
	})
	engine.Use(RequireCapability(constants.EntityAsset, constants.ActionCreate, logger.NewNoopLogger()))
	engine.POST("/assets", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/assets", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
