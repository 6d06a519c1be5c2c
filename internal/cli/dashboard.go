package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/homeenergy/internal/config"
	"github.com/rshade/homeenergy/internal/energy"
	"github.com/rshade/homeenergy/internal/logging"
	"github.com/rshade/homeenergy/internal/tui"
)

// ExitError carries a process exit code for an outcome that has already been
// reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFetchFailed is returned with --fail-on-error when the dashboard
// settles in the error view.
const ExitCodeFetchFailed = 1

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the emissions forecast and the optimal usage schedule",
		Long: `Fetches the carbon emissions forecast and the optimal energy usage schedule
and renders them. This is also what homeenergy runs without a subcommand.`,
		Example: `  # Interactive dashboard
  homeenergy dashboard

  # One-shot text output
  homeenergy dashboard --plain

  # JSON output for scripts
  homeenergy dashboard -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.failOnError, "fail-on-error", false, "exit non-zero when the data cannot be fetched")

	return cmd
}

// runDashboard routes to JSON, interactive or printed output, in that order.
func runDashboard(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return err
	}

	mode := dashboardMode(cfg, opts)
	logCfg := cfg.Logging.ToLoggingConfig()
	if mode == tui.OutputModeInteractive {
		logCfg = cfg.Logging.ForDashboard()
	}
	result := setupLogging(cmd, opts, logCfg)
	opts.logResult = &result
	// PersistentPostRunE is skipped when RunE fails, so close here too.
	defer func() { _ = result.Close() }()

	if cfg.Output.NoColor || tui.ColorDisabled(opts.lookupEnv) {
		tui.DisableColor()
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	renderOpts := tui.RenderOptions{ShowSummary: cfg.Output.ShowSummary}
	logging.FromContext(ctx).Debug().
		Str("output_mode", mode.String()).
		Str("format", cfg.Output.Format).
		Str("fetch_mode", string(fetcher.Mode())).
		Msg("rendering dashboard")

	var state tui.ViewState
	switch {
	case cfg.Output.Format == config.OutputJSON:
		state = fetchState(ctx, fetcher)
		if err := tui.RenderJSON(cmd.OutOrStdout(), state); err != nil {
			return err
		}
	case mode == tui.OutputModeInteractive:
		state, err = runInteractiveDashboard(ctx, fetcher, renderOpts)
		if err != nil {
			return err
		}
	default:
		state = fetchState(ctx, fetcher)
		printDashboard(cmd.OutOrStdout(), state, renderOpts, mode)
	}

	if _, failed := state.(tui.ErrorState); failed && opts.failOnError {
		return &ExitError{Code: ExitCodeFetchFailed, Err: energy.ErrFetchFailure}
	}
	return nil
}

func dashboardMode(cfg *config.Config, opts *rootOptions) tui.OutputMode {
	if cfg.Output.Format == config.OutputPlain || cfg.Output.Format == config.OutputJSON {
		return tui.OutputModePlain
	}
	return tui.DetectOutputMode(opts.plain)
}

func newFetcher(cfg *config.Config) (*energy.Fetcher, error) {
	mode, err := energy.ParseFetchMode(cfg.Backend.FetchMode)
	if err != nil {
		return nil, err
	}
	client, err := energy.NewClient(energy.ClientConfig{
		BaseURL:      cfg.Backend.BaseURL,
		ForecastPath: cfg.Backend.ForecastPath,
		UsagePath:    cfg.Backend.UsagePath,
		Timeout:      cfg.Backend.Timeout,
	}, energy.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return energy.NewFetcher(client, mode, logger), nil
}

// fetchState runs one fetch cycle to completion. The Loading view is never
// printed on this path.
func fetchState(ctx context.Context, fetcher *energy.Fetcher) tui.ViewState {
	d, err := fetcher.Fetch(ctx)
	return tui.StateFromResult(d, err)
}

func printDashboard(w io.Writer, state tui.ViewState, opts tui.RenderOptions, mode tui.OutputMode) {
	if mode == tui.OutputModeStyled {
		_, _ = fmt.Fprint(w, tui.RenderStyled(state, opts, tui.TerminalWidth()))
		return
	}
	_, _ = fmt.Fprint(w, tui.Render(state, opts))
}

func runInteractiveDashboard(
	ctx context.Context,
	fetcher *energy.Fetcher,
	opts tui.RenderOptions,
) (tui.ViewState, error) {
	model := tui.NewDashboardModel(ctx, fetcher.Fetch, opts)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run interactive dashboard: %w", err)
	}
	if m, ok := final.(*tui.DashboardModel); ok {
		return m.State(), nil
	}
	return model.State(), nil
}
