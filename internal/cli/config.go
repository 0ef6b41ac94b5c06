package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/christianwhocodes/create-olyv-app/internal/branding"
	"github.com/christianwhocodes/create-olyv-app/internal/config"
	"github.com/christianwhocodes/create-olyv-app/internal/output"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write ` + branding.DisplayName() + ` settings stored at ~/` + branding.HomeDir() + `/config.yaml.

Environment variables ` + branding.EnvVar(config.KeyTemplate) + `, ` + branding.EnvVar(config.KeyMirror) + ` and ` + branding.EnvVar(config.KeySync) + `
override the file.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.ValidateKey(key); err != nil {
			return output.NewUserError(err.Error())
		}
		if err := config.Set(key, value); err != nil {
			return output.WithCause(output.ExitSystemError, fmt.Errorf("setting config key %q: %w", key, err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateKey(args[0]); err != nil {
			return output.NewUserError(err.Error())
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration keys and their values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer := newPrinter(cmd)
		for _, kv := range config.Keys() {
			printer.Print("%-9s %-40s # %s\n", kv[0], config.Get(kv[0]), kv[1])
		}
		printer.Info("file: %s", config.FilePath())
		return nil
	},
}
