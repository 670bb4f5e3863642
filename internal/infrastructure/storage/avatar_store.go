// Package storage implements the object store client used for user avatars.
// Objects are uploaded to the bucket endpoint and served through a separate
// public base URL.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/resguardo/resguardo/internal/config"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// HTTPAvatarStore talks to an S3-compatible object gateway over plain HTTP.
type HTTPAvatarStore struct {
	endpoint   string
	bucket     string
	publicURL  string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewHTTPAvatarStore builds a store from the storage configuration section.
func NewHTTPAvatarStore(cfg *config.StorageConfig, apiKey string, log logger.Logger) *HTTPAvatarStore {
	return &HTTPAvatarStore{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: log.WithComponent("avatar_store"),
	}
}

func (s *HTTPAvatarStore) objectURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, strings.TrimLeft(path, "/"))
}

// Upload stores the object and returns the public URL it will be served from.
func (s *HTTPAvatarStore) Upload(ctx context.Context, path string, content []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.objectURL(path), bytes.NewReader(content))
	if err != nil {
		return "", errors.ErrInternal.WithMessage("build upload request").WithError(err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error(ctx, "avatar upload failed", err, logger.Fields{"path": path})
		return "", errors.ErrExternalService.WithMessage("object store unreachable").WithError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return "", errors.ErrExternalService.WithMessagef("object store returned %d", resp.StatusCode)
	}

	s.logger.Info(ctx, "avatar uploaded", logger.Fields{"path": path, "bytes": len(content)})
	return fmt.Sprintf("%s/%s", s.publicURL, strings.TrimLeft(path, "/")), nil
}

// Delete removes the object. Deleting a missing object is treated as success
// so retries stay harmless.
func (s *HTTPAvatarStore) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(path), nil)
	if err != nil {
		return errors.ErrInternal.WithMessage("build delete request").WithError(err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.ErrExternalService.WithMessage("object store unreachable").WithError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return errors.ErrExternalService.WithMessagef("object store returned %d", resp.StatusCode)
	}
	return nil
}
