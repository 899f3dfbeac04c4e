// File: pkg/storage/gcp/client.go
package gcp

import (
	"context"
	"errors"
	"log/slog"

	"sitedeploy/internal/config"
	"sitedeploy/internal/provider/registry"
	"sitedeploy/pkg/common"
	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

func init() {
	registry.RegisterProvider(common.GCP, registry.ProviderRegistration{
		Description: "Google Cloud Storage (direct website only, no redirects)",
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// Checks that a project is set, since bucket creation and listing are project scoped
func isConfigured(cfg *config.Config) error {
	if cfg.GCP.Project == "" {
		return errors.New("gcp.project is not set. Use 'sitedeploy config set gcp.project <project-id>'")
	}
	return nil
}

func initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	return NewGCPStorage(ctx, cfg.GCP, logger)
}

type GCPStorage struct {
	client    *gcpstorage.Client
	projectID string
	location  string
	logger    *slog.Logger
}

var _ storage.Storage = (*GCPStorage)(nil)

// Builds the client from Application Default Credentials, or from the service
// account key file when gcp.credentials_file is set
func NewGCPStorage(ctx context.Context, cfg config.GCPConfig, logger *slog.Logger) (*GCPStorage, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcpstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrAuthentication, err, "failed to create GCP storage client")
	}

	return &GCPStorage{
		client:    client,
		projectID: cfg.Project,
		location:  cfg.Location,
		logger:    logger,
	}, nil
}

func (g *GCPStorage) ProviderName() common.Provider {
	return common.GCP
}

// GCS website settings have no redirect-all option, see mapWebsiteConfiguration
func (g *GCPStorage) SupportsWebsiteRedirect() bool {
	return false
}

// Lists at most one bucket in the project. An empty project still proves the
// credentials were accepted
func (g *GCPStorage) VerifyCredentials(ctx context.Context) error {
	g.logger.Debug("Verifying GCP credentials", "project", g.projectID)

	it := g.client.Buckets(ctx, g.projectID)
	it.PageInfo().MaxSize = 1
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return classifyError(err, "verifying GCP credentials for project %s", g.projectID)
	}
	return nil
}

func (g *GCPStorage) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
