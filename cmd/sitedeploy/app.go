// File: cmd/sitedeploy/app.go
package main

import (
	"context"
	"errors"
	"log/slog"

	"sitedeploy/internal/config"
	"sitedeploy/internal/finder"
	"sitedeploy/internal/formatter"
	"sitedeploy/internal/provider/factory"
	"sitedeploy/internal/service"
	"sitedeploy/internal/ui/prompt"

	"github.com/spf13/afero"
)

// appContainer holds the dependencies shared by all commands. Configuration is
// decoded on demand so the config subcommands work even when it is invalid
type appContainer struct {
	ConfigManager   *config.ConfigManager
	DeployFormatter *formatter.DeployFormatter
	Prompter        prompt.Prompter
	Fs              afero.Fs
	Logger          *slog.Logger
}

type appContextKey struct{}

func newApp(cfgManager *config.ConfigManager, prompter prompt.Prompter, logger *slog.Logger) *appContainer {
	return &appContainer{
		ConfigManager:   cfgManager,
		DeployFormatter: formatter.NewDeployFormatter(),
		Prompter:        prompter,
		Fs:              afero.NewOsFs(),
		Logger:          logger,
	}
}

// Decodes the merged configuration and wires a deploy service for it
func (a *appContainer) deployService() (*service.DeployService, *config.Config, error) {
	cfg, err := a.ConfigManager.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	providerFactory := factory.NewFactory(cfg, a.Logger)
	fileFinder := finder.New(a.Fs, a.Logger)
	return service.NewDeployService(providerFactory, fileFinder, cfg.Provider, cfg.BuildDir, a.Logger), cfg, nil
}

func withApp(ctx context.Context, app *appContainer) context.Context {
	return context.WithValue(ctx, appContextKey{}, app)
}

func appFromContext(ctx context.Context) (*appContainer, error) {
	app, ok := ctx.Value(appContextKey{}).(*appContainer)
	if !ok || app == nil {
		return nil, errors.New("application not initialized")
	}
	return app, nil
}
