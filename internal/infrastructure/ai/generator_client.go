// Package ai wraps the external generation endpoint used to seed a site with
// suggested assets and threats when no catalog template matched.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/resguardo/resguardo/internal/config"
	domainservice "github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

const maxResponseBytes = 1 << 20

// GeneratorClient calls the generation endpoint over HTTP. Response bodies
// are size-bounded; a misbehaving upstream surfaces as an error, never a
// crash.
type GeneratorClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewGeneratorClient builds a client from the AI section of the configuration.
func NewGeneratorClient(cfg *config.AIConfig, apiKey string, log logger.Logger) *GeneratorClient {
	return &GeneratorClient{
		endpoint: cfg.Endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: log.WithComponent("ai_generator"),
	}
}

type generateResponse struct {
	Success      bool   `json:"success"`
	AssetsAdded  int    `json:"assets_added"`
	ThreatsAdded int    `json:"threats_added"`
	Message      string `json:"message"`
}

// Generate submits the site profile and returns the generation outcome.
func (c *GeneratorClient) Generate(ctx context.Context, req domainservice.GenerationRequest) (*domainservice.GenerationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.ErrInternal.WithMessage("encode generation request").WithError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.ErrInternal.WithMessage("build generation request").WithError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error(ctx, "generation call failed", err, logger.Fields{"site_id": req.SiteID})
		return nil, errors.ErrExternalService.WithMessage("generation service unreachable").WithError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.ErrExternalService.WithMessage("read generation response").WithError(err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn(ctx, "generation service returned non-200", logger.Fields{
			"site_id": req.SiteID,
			"status":  resp.StatusCode,
		})
		return nil, errors.ErrExternalService.WithMessagef("generation service returned %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.ErrExternalService.WithMessage("malformed generation response").WithError(err)
	}
	if decoded.AssetsAdded < 0 || decoded.ThreatsAdded < 0 {
		return nil, errors.ErrExternalService.WithMessage(fmt.Sprintf("generation response out of range: assets=%d threats=%d", decoded.AssetsAdded, decoded.ThreatsAdded))
	}

	c.logger.Info(ctx, "generation completed", logger.Fields{
		"site_id":       req.SiteID,
		"assets_added":  decoded.AssetsAdded,
		"threats_added": decoded.ThreatsAdded,
		"latency_ms":    time.Since(start).Milliseconds(),
	})

	return &domainservice.GenerationResult{
		Success:      decoded.Success,
		AssetsAdded:  decoded.AssetsAdded,
		ThreatsAdded: decoded.ThreatsAdded,
	}, nil
}
