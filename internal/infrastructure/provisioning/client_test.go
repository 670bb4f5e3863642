package provisioning

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resguardo/resguardo/internal/config"
	domainservice "github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

func newTestProvisioner(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := &config.ProvisioningConfig{Endpoint: server.URL, Timeout: 5}
	return NewClient(cfg, "prov-key", logger.NewNoopLogger())
}

func TestProvision_ReturnsProviderID(t *testing.T) {
	providerID := uuid.New()
	var gotReq domainservice.ProvisionRequest
	client := newTestProvisioner(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"user_id": providerID})
	})

	siteID := uuid.New()
	id, err := client.Provision(context.Background(), domainservice.ProvisionRequest{
		Email:    "consultor@resguardo.example",
		Password: "s3creta",
		FullName: "Laura Ríos",
		Role:     "consultant",
		SiteIDs:  []uuid.UUID{siteID},
	})

	require.NoError(t, err)
	assert.Equal(t, providerID, id)
	assert.Equal(t, "consultor@resguardo.example", gotReq.Email)
	assert.Equal(t, []uuid.UUID{siteID}, gotReq.SiteIDs)
}

func TestProvision_DuplicateEmailIsConflict(t *testing.T) {
	client := newTestProvisioner(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	_, err := client.Provision(context.Background(), domainservice.ProvisionRequest{Email: "dup@resguardo.example"})

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}

func TestProvision_MissingUserIDIsRejected(t *testing.T) {
	client := newTestProvisioner(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{})
	})

	_, err := client.Provision(context.Background(), domainservice.ProvisionRequest{Email: "x@resguardo.example"})

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeExternalService, appErr.Code)
}
