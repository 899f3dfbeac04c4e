package factory_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"sitedeploy/internal/config"
	"sitedeploy/internal/logger"
	"sitedeploy/internal/provider/factory"
	"sitedeploy/internal/provider/registry"
	"sitedeploy/pkg/common"
	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"
	"sitedeploy/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

const needsProject common.Provider = "factory-needs-project"

func init() {
	registry.RegisterProvider(needsProject, registry.ProviderRegistration{
		ConfigCheck: func(cfg *config.Config) error {
			if cfg.GCP.Project == "" {
				return errors.New("gcp.project is not set")
			}
			return nil
		},
		Initializer: func(context.Context, *config.Config, *slog.Logger) (storage.Storage, error) {
			return memory.New(), nil
		},
	})
}

func TestGetStorageProvider_Memory(t *testing.T) {
	f := factory.NewFactory(&config.Config{}, logger.Discard())

	client, err := f.GetStorageProvider(context.Background(), "Memory")
	require.NoError(t, err)
	require.Equal(t, common.Memory, client.ProviderName())
	require.True(t, f.IsConfigured(common.Memory))
}

func TestGetStorageProvider_Unsupported(t *testing.T) {
	f := factory.NewFactory(&config.Config{}, logger.Discard())

	_, err := f.GetStorageProvider(context.Background(), "azure")
	require.ErrorIs(t, err, serrors.ErrInvalidArgument)
	require.False(t, f.IsConfigured("azure"))
}

func TestGetStorageProvider_NotConfigured(t *testing.T) {
	f := factory.NewFactory(&config.Config{}, logger.Discard())

	_, err := f.GetStorageProvider(context.Background(), needsProject)
	require.ErrorIs(t, err, serrors.ErrNotConfigured)
	require.Contains(t, err.Error(), "gcp.project is not set")
	require.False(t, f.IsConfigured(needsProject))

	f = factory.NewFactory(&config.Config{GCP: config.GCPConfig{Project: "p"}}, logger.Discard())
	require.True(t, f.IsConfigured(needsProject))
}
