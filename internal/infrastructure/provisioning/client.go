// Package provisioning wraps the external identity provider that owns user
// accounts. The console never stores passwords; it asks the provider to
// create the account and mirrors the resulting profile.
package provisioning

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/internal/config"
	domainservice "github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

const maxResponseBytes = 64 << 10

// Client calls the provisioning endpoint over HTTP.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient builds a client from the provisioning configuration section.
func NewClient(cfg *config.ProvisioningConfig, apiKey string, log logger.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: log.WithComponent("provisioning"),
	}
}

type provisionResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

// Provision creates the account plus its grants on the provider side and
// returns the provider-assigned user id.
func (c *Client) Provision(ctx context.Context, req domainservice.ProvisionRequest) (uuid.UUID, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return uuid.Nil, errors.ErrInternal.WithMessage("encode provision request").WithError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return uuid.Nil, errors.ErrInternal.WithMessage("build provision request").WithError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error(ctx, "provisioning call failed", err, logger.Fields{"email": req.Email})
		return uuid.Nil, errors.ErrExternalService.WithMessage("provisioning service unreachable").WithError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return uuid.Nil, errors.ErrExternalService.WithMessage("read provisioning response").WithError(err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		return uuid.Nil, errors.ErrConflict.WithMessagef("account %s already exists", req.Email)
	default:
		c.logger.Warn(ctx, "provisioning service returned non-2xx", logger.Fields{
			"email":  req.Email,
			"status": resp.StatusCode,
		})
		return uuid.Nil, errors.ErrExternalService.WithMessagef("provisioning service returned %d", resp.StatusCode)
	}

	var decoded provisionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return uuid.Nil, errors.ErrExternalService.WithMessage("malformed provisioning response").WithError(err)
	}
	if decoded.UserID == uuid.Nil {
		return uuid.Nil, errors.ErrExternalService.WithMessage("provisioning response missing user id")
	}

	c.logger.Info(ctx, "account provisioned", logger.Fields{"user_id": decoded.UserID, "role": req.Role})
	return decoded.UserID, nil
}
