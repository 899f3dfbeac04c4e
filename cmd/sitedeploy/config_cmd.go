// File: cmd/sitedeploy/config_cmd.go
package main

import (
	"fmt"
	"sort"
	"strings"

	"sitedeploy/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: fmt.Sprintf(`Manage the settings stored in the configuration file. Known keys:

  %s

Credentials are never stored; export them in the environment instead.`, strings.Join(config.KnownKeys(), "\n  ")),
	}

	configSetCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration key-value pair",
		Long:  `Sets a configuration value. For example: 'sitedeploy config set aws.region eu-west-1'`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			value := args[1]

			if err := app.ConfigManager.SetValue(key, value); err != nil {
				return fmt.Errorf("error setting configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration set: %s = %s\n", key, value)
			return nil
		},
	}

	configGetCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value by key",
		Long:  `Retrieves the effective value for a key from the file, the environment or the defaults. For example: 'sitedeploy config get build_dir'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			value, exists := app.ConfigManager.GetValue(key)

			if !exists || value == "" {
				return fmt.Errorf("configuration key '%s' not found or not set", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
			return nil
		},
	}

	configDeleteCmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete a configuration value by key",
		Long:  `Removes a key from the configuration file so its default applies again. For example: 'sitedeploy config delete aws.endpoint'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			key := strings.ToLower(args[0])
			confirmed, err := app.Prompter.Confirm(fmt.Sprintf("Delete '%s' from %s?", key, app.ConfigManager.Path()))
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			deleted, err := app.ConfigManager.DeleteValue(key)
			if err != nil {
				return fmt.Errorf("error deleting configuration: %w", err)
			}
			if !deleted {
				return fmt.Errorf("configuration key '%s' not found", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration key '%s' deleted\n", key)
			return nil
		},
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all current configuration values",
		Long:  `Displays every key with a value, whatever its source. Credentials are masked.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			displaySettings := make(map[string]any)
			for k, v := range flattenConfigMap(app.ConfigManager.GetAllSettings()) {
				if s, ok := v.(string); ok && s == "" {
					continue
				}
				if v != nil {
					displaySettings[k] = v
				}
			}

			if len(displaySettings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No configuration values set. Use 'sitedeploy config set <key> <value>'.")
				return nil
			}

			keys := make([]string, 0, len(displaySettings))
			for k := range displaySettings {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			fmt.Fprintf(cmd.OutOrStdout(), "Current configuration (%s):\n", app.ConfigManager.Path())
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s = %v\n", k, displaySettings[k])
			}
			return nil
		},
	}

	configCmd.AddCommand(configSetCmd, configGetCmd, configDeleteCmd, configListCmd)
	return configCmd
}

// Flattens viper's nested settings into dot-separated keys
func flattenConfigMap(nestedMap map[string]any) map[string]any {
	flattenedMap := make(map[string]any)

	var flatten func(string, any)
	flatten = func(prefix string, value any) {
		switch v := value.(type) {
		case map[string]any:
			for k, val := range v {
				newPrefix := k
				if prefix != "" {
					newPrefix = prefix + "." + k
				}
				flatten(newPrefix, val)
			}
		default:
			if prefix != "" {
				flattenedMap[prefix] = value
			}
		}
	}

	flatten("", nestedMap)
	return flattenedMap
}
