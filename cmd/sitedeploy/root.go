// File: cmd/sitedeploy/root.go
package main

import (
	"context"
	"fmt"
	"log/slog"

	"sitedeploy/internal/config"
	"sitedeploy/internal/flags"
	"sitedeploy/internal/ui/prompt"

	"github.com/spf13/cobra"
)

// Config keys that root flags override when set
var flagBindings = map[string]string{
	"provider":  flags.Provider,
	"build_dir": flags.BuildDir,
}

func newRootCmd(level *slog.LevelVar, logger *slog.Logger, newConfigManager func() (*config.ConfigManager, error)) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sitedeploy <domain>",
		Short: "Deploy a static website to object storage",
		Long: `Deploys the build directory to <domain>.com and points www.<domain>.com at it.

Both containers are created when missing. <domain>.com serves index.html and
receives every file under the build directory as a public object, stored under
its base name. www.<domain>.com redirects all requests to <domain>.com.

Credentials are read from AWS_ID and AWS_SECRET (or AWS_ACCESS_KEY_ID and
AWS_SECRET_ACCESS_KEY) for S3, and from Application Default Credentials for GCS.`,
		Example:       "  sitedeploy example\n  sitedeploy example --provider memory --build-dir dist",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, err := cmd.Flags().GetBool(flags.Debug)
			if err != nil {
				return err
			}
			if debug {
				level.Set(slog.LevelDebug)
			}

			cfgManager, err := newConfigManager()
			if err != nil {
				return err
			}
			// Subcommands do not carry the deploy flags
			for key, flagName := range flagBindings {
				flag := cmd.Flags().Lookup(flagName)
				if flag == nil {
					continue
				}
				if err := cfgManager.BindFlag(key, flag); err != nil {
					return err
				}
			}

			assumeYes, err := cmd.Flags().GetBool(flags.Yes)
			if err != nil {
				return err
			}
			var prompter prompt.Prompter = prompt.NewStandardPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			if assumeYes {
				prompter = prompt.AssumeYes{}
			}

			logger.Debug("Using configuration file", "path", cfgManager.Path())
			cmd.SetContext(withApp(cmd.Context(), newApp(cfgManager, prompter, logger)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			deployService, cfg, err := app.deployService()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if cfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
				defer cancel()
			}

			result, err := deployService.Deploy(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), app.DeployFormatter.FormatResult(result))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP(flags.Debug, flags.DebugShort, false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP(flags.Yes, flags.YesShort, false, "Answer yes to confirmation prompts")
	rootCmd.Flags().StringP(flags.Provider, flags.ProviderShort, "", "Storage provider to deploy to (overrides the 'provider' setting)")
	rootCmd.Flags().StringP(flags.BuildDir, flags.BuildDirShort, "", "Directory whose files are uploaded (overrides the 'build_dir' setting)")

	rootCmd.AddCommand(newConfigCmd(), newProvidersCmd())
	return rootCmd
}

