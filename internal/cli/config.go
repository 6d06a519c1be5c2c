package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/homeenergy/internal/config"
	"github.com/rshade/homeenergy/internal/logging"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the homeenergy configuration file",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result := setupLogging(cmd, opts, logging.Config{
				Level:  "warn",
				Format: logging.FormatConsole,
				Output: logging.OutputStderr,
			})
			opts.logResult = &result
			return nil
		},
	}

	cmd.AddCommand(newConfigInitCmd(opts), newConfigValidateCmd(opts), newConfigShowCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at the --config path,
or $XDG_CONFIG_HOME/homeenergy/config.yaml.`,
		Example: `  # Create the default configuration
  homeenergy config init

  # Create configuration, overwriting existing
  homeenergy config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Init(opts.configPath, force)
			if err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Str("path", cfg.ConfigPath()).Msg("configuration initialized")
			cmd.Printf("Configuration initialized at %s\n", cfg.ConfigPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

func newConfigValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Loads the configuration file and HOMEENERGY_* environment overrides and
checks the backend URL, paths, timeout and enum values.`,
		Example: `  # Validate the current configuration
  homeenergy config validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Printf("Configuration is valid (%s)\n", cfg.ConfigPath())
			return nil
		},
	}
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Prints the configuration after applying the file, HOMEENERGY_* environment
overrides and command-line flags.`,
		Example: `  # Show the effective configuration
  homeenergy config show

  # Show it with a flag override applied
  homeenergy config show --base-url https://energy.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolveConfig(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
