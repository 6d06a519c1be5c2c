package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/homeenergy/internal/config"
	"github.com/rshade/homeenergy/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootOptions holds the persistent flags and the state resolved from them
// before a command runs.
type rootOptions struct {
	configPath  string
	baseURL     string
	fetchMode   string
	timeout     time.Duration
	output      string
	plain       bool
	noColor     bool
	debug       bool
	failOnError bool

	lookupEnv func(string) (string, bool)
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the homeenergy CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with an explicit env lookup for
// testability.
func NewRootCmdWithArgs(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	opts := &rootOptions{lookupEnv: lookupEnv}

	cmd := &cobra.Command{
		Use:   "homeenergy",
		Short: "Home energy dashboard",
		Long: `homeenergy shows the carbon emissions forecast and the optimal energy
usage schedule served by a home energy backend.

On a terminal it runs an interactive dashboard. When piped, or with --plain,
it prints the dashboard once as text.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, opts.logResult)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/homeenergy/config.yaml)")
	pf.StringVar(&opts.baseURL, "base-url", "", "backend base URL (overrides backend.base_url)")
	pf.StringVar(&opts.fetchMode, "fetch-mode", "", "sequential or parallel (overrides backend.fetch_mode)")
	pf.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout, 0 disables it (overrides backend.timeout)")
	pf.StringVarP(&opts.output, "output", "o", "", "auto, plain or json (overrides output.format)")
	pf.BoolVar(&opts.plain, "plain", false, "print the dashboard once without styling or interaction")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging to stderr")

	cmd.Flags().BoolVar(&opts.failOnError, "fail-on-error", false, "exit non-zero when the data cannot be fetched")

	cmd.AddCommand(newDashboardCmd(opts), newConfigCmd(opts))

	return cmd
}

const rootCmdExample = `  # Show the dashboard for the local backend
  homeenergy

  # Point at another backend and fetch both series at once
  homeenergy --base-url https://energy.example.com --fetch-mode parallel

  # Print the dashboard as JSON
  homeenergy dashboard --output json

  # Fail the shell pipeline when the backend is down
  homeenergy dashboard --plain --fail-on-error

  # Write a default configuration file
  homeenergy config init`

// resolveConfig loads the config file and environment, then applies the
// flags the user set.
func (o *rootOptions) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.Backend.BaseURL = o.baseURL
	}
	if flags.Changed("fetch-mode") {
		cfg.Backend.FetchMode = o.fetchMode
	}
	if flags.Changed("timeout") {
		cfg.Backend.Timeout = o.timeout
	}
	if flags.Changed("output") {
		cfg.Output.Format = o.output
	}
	if o.noColor {
		cfg.Output.NoColor = true
	}

	cfg.Normalize()
	if o.plain && cfg.Output.Format == config.OutputAuto {
		cfg.Output.Format = config.OutputPlain
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
