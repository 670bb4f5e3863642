// Package secrets resolves runtime credentials. Production reads them from
// HashiCorp Vault; deployments without Vault fall back to the static values
// in the configuration file.
package secrets

import (
	"context"
	"fmt"

	vault "github.com/hashicorp/vault/api"

	"github.com/resguardo/resguardo/internal/config"
	"github.com/resguardo/resguardo/pkg/errors"
	"github.com/resguardo/resguardo/pkg/logger"
)

// Provider hands out the secrets the service needs at runtime.
type Provider interface {
	// JWTSecret returns the HS256 shared secret used to verify console tokens.
	JWTSecret(ctx context.Context) (string, error)

	// APIKey returns the key for the named external collaborator.
	APIKey(ctx context.Context, name string) (string, error)
}

// NewProvider selects the Vault-backed provider when Vault is enabled, the
// static config provider otherwise.
func NewProvider(cfg *config.Config, log logger.Logger) (Provider, error) {
	if !cfg.Vault.Enabled {
		return &staticProvider{cfg: cfg}, nil
	}
	return newVaultProvider(&cfg.Vault, log)
}

type staticProvider struct {
	cfg *config.Config
}

func (p *staticProvider) JWTSecret(ctx context.Context) (string, error) {
	if p.cfg.JWT.Secret == "" {
		return "", errors.ErrInternal.WithMessage("jwt secret not configured")
	}
	return p.cfg.JWT.Secret, nil
}

func (p *staticProvider) APIKey(ctx context.Context, name string) (string, error) {
	switch name {
	case "ai":
		return p.cfg.AI.APIKey, nil
	case "storage":
		return p.cfg.Storage.APIKey, nil
	case "provisioning":
		return p.cfg.Provisioning.APIKey, nil
	}
	return "", errors.ErrInternal.WithMessagef("unknown api key %q", name)
}

type vaultProvider struct {
	client    *vault.Client
	mountPath string
	logger    logger.Logger
}

func newVaultProvider(cfg *config.VaultConfig, log logger.Logger) (*vaultProvider, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("create vault client: %w", err)
	}
	client.SetToken(cfg.Token)

	return &vaultProvider{
		client:    client,
		mountPath: cfg.MountPath,
		logger:    log.WithComponent("vault"),
	}, nil
}

func (p *vaultProvider) read(ctx context.Context, path, field string) (string, error) {
	secret, err := p.client.KVv2(p.mountPath).Get(ctx, path)
	if err != nil {
		p.logger.Error(ctx, "vault read failed", err, logger.Fields{"path": path})
		return "", errors.ErrExternalService.WithMessage("secret store unavailable").WithError(err)
	}
	if secret == nil || secret.Data == nil {
		return "", errors.ErrNotFound.WithMessagef("secret %s not found", path)
	}
	value, ok := secret.Data[field].(string)
	if !ok {
		return "", errors.ErrInternal.WithMessagef("secret %s missing field %s", path, field)
	}
	return value, nil
}

func (p *vaultProvider) JWTSecret(ctx context.Context) (string, error) {
	return p.read(ctx, "jwt", "secret")
}

func (p *vaultProvider) APIKey(ctx context.Context, name string) (string, error) {
	return p.read(ctx, "api-keys", name)
}
