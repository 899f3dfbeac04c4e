// File: internal/service/deploy_service.go
package service

import (
	"context"
	"log/slog"

	"sitedeploy/internal/finder"
	"sitedeploy/internal/site"
	"sitedeploy/pkg/common"
	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"
)

// Builds storage backends by provider name. Satisfied by *factory.Factory
type StorageProvider interface {
	GetStorageProvider(ctx context.Context, providerName common.Provider) (storage.Storage, error)
}

type ContainerResult struct {
	Name    string
	Created bool
	Website storage.WebsiteConfiguration
}

// What a successful deploy did
type DeployResult struct {
	Provider common.Provider
	Domain   string
	BuildDir string
	Base     ContainerResult
	WWW      ContainerResult
	// Object names in upload order. A name appears once per file, so
	// colliding base names appear more than once
	Objects []string
}

type DeployService struct {
	providers StorageProvider
	finder    *finder.Finder
	provider  common.Provider
	buildDir  string
	logger    *slog.Logger
}

func NewDeployService(providers StorageProvider, fileFinder *finder.Finder, provider common.Provider, buildDir string, logger *slog.Logger) *DeployService {
	return &DeployService{
		providers: providers,
		finder:    fileFinder,
		provider:  provider,
		buildDir:  buildDir,
		logger:    logger.With("service", "DeployService"),
	}
}

// Runs the whole workflow for domain: check the provider can redirect, verify
// credentials, resolve both containers, configure them, then upload the build
// directory. The first error ends the run
func (s *DeployService) Deploy(ctx context.Context, domain string) (DeployResult, error) {
	s.logger.Debug("Starting Deploy operation", "domain", domain, "provider", s.provider, "build_dir", s.buildDir)

	client, err := s.providers.GetStorageProvider(ctx, s.provider)
	if err != nil {
		return DeployResult{}, err
	}
	defer client.Close()

	// The www container can only be served as a redirect
	if !client.SupportsWebsiteRedirect() {
		return DeployResult{}, serrors.With(serrors.ErrUnsupported,
			"provider %s cannot redirect %s to %s, nothing was deployed", client.ProviderName(), site.WWWName(domain), site.BaseName(domain))
	}

	// Nothing is looked up or created with credentials the provider rejects
	if err := client.VerifyCredentials(ctx); err != nil {
		s.logger.Error("Credential check failed", "provider", s.provider, "error", err)
		return DeployResult{}, err
	}

	st, err := site.New(ctx, site.NewStore(client, s.logger), domain, s.logger)
	if err != nil {
		return DeployResult{}, err
	}

	if err := st.ConfigureWebsite(ctx); err != nil {
		return DeployResult{}, err
	}

	found, err := s.finder.FindFiles(s.buildDir)
	if err != nil {
		return DeployResult{}, err
	}

	written, err := st.UploadFiles(ctx, siteFiles(found))
	if err != nil {
		s.logger.Error("Upload stopped", "site", st.Base().Name(), "uploaded", len(written), "total", len(found), "error", err)
		return DeployResult{}, err
	}

	return DeployResult{
		Provider: client.ProviderName(),
		Domain:   domain,
		BuildDir: s.buildDir,
		Base:     containerResult(st.Base(), site.Direct{}),
		WWW:      containerResult(st.WWW(), site.RedirectTo{Target: st.Base()}),
		Objects:  written,
	}, nil
}

func containerResult(ns *site.Namespace, role site.WebsiteConfig) ContainerResult {
	website, _ := site.Translate(role)
	return ContainerResult{
		Name:    ns.Name(),
		Created: ns.Created(),
		Website: website,
	}
}

func siteFiles(found []finder.File) []site.File {
	files := make([]site.File, len(found))
	for i, f := range found {
		files[i] = f
	}
	return files
}
