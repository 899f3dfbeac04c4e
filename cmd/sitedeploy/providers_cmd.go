// File: cmd/sitedeploy/providers_cmd.go
package main

import (
	"fmt"

	"sitedeploy/internal/formatter"
	"sitedeploy/internal/provider/factory"
	"sitedeploy/internal/provider/registry"
	"sitedeploy/pkg/common"

	"github.com/spf13/cobra"
)

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported storage providers",
		Long:  `Lists every storage provider this build supports and whether the current configuration is complete enough to deploy with it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			cfg, err := app.ConfigManager.LoadConfig()
			if err != nil {
				return err
			}
			providerFactory := factory.NewFactory(cfg, app.Logger)

			table := formatter.NewTable([]string{"PROVIDER", "SELECTED", "CONFIGURED", "DESCRIPTION"})
			for _, name := range registry.GetSupportedProviders() {
				p := common.Provider(name)
				registration, _ := registry.GetRegistration(p)
				table.AddRow([]string{
					name,
					yesNo(p == cfg.Provider),
					yesNo(providerFactory.IsConfigured(p)),
					registration.Description,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
