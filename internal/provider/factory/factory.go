// File: internal/provider/factory/factory.go
package factory

import (
	"context"
	"fmt"
	"log/slog"

	"sitedeploy/internal/config"
	"sitedeploy/internal/provider/registry"
	"sitedeploy/pkg/common"
	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"
)

type Factory struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewFactory(cfg *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// Reports whether a provider is registered and has the configuration it needs
func (f *Factory) IsConfigured(providerName common.Provider) bool {
	registration, exists := registry.GetRegistration(providerName)
	if !exists {
		return false
	}
	return registration.ConfigCheck(f.cfg) == nil
}

// Initializes and returns the storage client for the specified provider
func (f *Factory) GetStorageProvider(ctx context.Context, providerName common.Provider) (storage.Storage, error) {
	normalizedName := common.ParseProvider(string(providerName))
	providerLogger := f.logger.With("provider", string(normalizedName))

	registration, exists := registry.GetRegistration(normalizedName)
	if !exists {
		return nil, serrors.With(serrors.ErrInvalidArgument, "unsupported provider: %s. Supported providers are: %v", providerName, registry.GetSupportedProviders())
	}

	if err := registration.ConfigCheck(f.cfg); err != nil {
		return nil, serrors.Wrap(serrors.ErrNotConfigured, err, "provider '%s' is not configured", normalizedName)
	}

	client, err := registration.Initializer(ctx, f.cfg, providerLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %s: %w", normalizedName, err)
	}

	return client, nil
}
