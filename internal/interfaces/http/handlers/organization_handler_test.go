package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resguardo/resguardo/internal/application/dto"
	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/infrastructure/monitoring"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

type mockOrgAppService struct {
	createResp *dto.OrganizationResponse
	createErr  error
	bulkResult *dto.BulkDeleteResult
	bulkErr    error
	gotCreate  *dto.CreateOrganizationRequest
	gotBulkIDs []uuid.UUID
}

func (m *mockOrgAppService) Create(ctx context.Context, principal models.Principal, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	m.gotCreate = req
	return m.createResp, m.createErr
}

func (m *mockOrgAppService) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	return nil, errors.ErrNotFound
}

func (m *mockOrgAppService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*dto.OrganizationResponse, error) {
	return nil, errors.ErrNotFound
}

func (m *mockOrgAppService) List(ctx context.Context, principal models.Principal, q *dto.ListQuery) ([]*dto.OrganizationResponse, error) {
	return nil, nil
}

func (m *mockOrgAppService) Delete(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	return nil
}

func (m *mockOrgAppService) BulkDelete(ctx context.Context, principal models.Principal, ids []uuid.UUID) (*dto.BulkDeleteResult, error) {
	m.gotBulkIDs = ids
	return m.bulkResult, m.bulkErr
}

var testMetrics = monitoring.NewMetrics()

func orgRig(t *testing.T, svc *mockOrgAppService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(string(constants.ContextKeyPrincipal), models.Principal{
			UserID: uuid.New(),
			Email:  "admin@resguardo.example",
			Role:   constants.RoleSuperAdmin,
		})
	})
	handler := NewOrganizationHandler(svc, testMetrics, logger.NewNoopLogger())
	engine.POST("/organizations", handler.Create)
	engine.POST("/organizations/bulk-delete", handler.BulkDelete)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestOrganizationCreate_Success(t *testing.T) {
	svc := &mockOrgAppService{
		createResp: &dto.OrganizationResponse{ID: uuid.New(), Name: "Industrias Pacífico"},
	}
	engine := orgRig(t, svc)

	rec := postJSON(t, engine, "/organizations", map[string]interface{}{
		"name":         "Industrias Pacífico",
		"license_type": "pro",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.NotNil(t, svc.gotCreate)
	assert.Equal(t, "Industrias Pacífico", svc.gotCreate.Name)
}

func TestOrganizationCreate_MissingNameRejected(t *testing.T) {
	svc := &mockOrgAppService{}
	engine := orgRig(t, svc)

	rec := postJSON(t, engine, "/organizations", map[string]interface{}{
		"license_type": "pro",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotCreate)
}

func TestOrganizationBulkDelete_PartialFailureKeepsCounts(t *testing.T) {
	svc := &mockOrgAppService{
		bulkResult: &dto.BulkDeleteResult{Requested: 3, Deleted: 2, Failed: 1},
		bulkErr: errors.ErrPartialFailure.
			WithMessagef("error eliminando %d organización(es)", 1).
			WithDetail("failed", 1),
	}
	engine := orgRig(t, svc)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	rec := postJSON(t, engine, "/organizations/bulk-delete", map[string]interface{}{"ids": ids})

	assert.Equal(t, http.StatusMultiStatus, rec.Code)
	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "error eliminando 1 organización(es)", envelope.Error.Message)
	require.NotNil(t, envelope.Data)
	assert.Len(t, svc.gotBulkIDs, 3)
}

func TestOrganizationBulkDelete_EmptySelectionRejected(t *testing.T) {
	svc := &mockOrgAppService{}
	engine := orgRig(t, svc)

	rec := postJSON(t, engine, "/organizations/bulk-delete", map[string]interface{}{"ids": []uuid.UUID{}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotBulkIDs)
}
