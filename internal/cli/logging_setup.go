package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/homeenergy/internal/logging"
)

// setupLogging installs the logger for this run and attaches it, with a trace
// id, to the command context. --debug always wins with console output on
// stderr.
func setupLogging(cmd *cobra.Command, opts *rootOptions, cfg logging.Config) logging.LogPathResult {
	if opts.debug {
		cfg.Level = "debug"
		cfg.Format = logging.FormatConsole
		cfg.Output = logging.OutputStderr
		cfg.File = ""
	}

	result := logging.NewLoggerWithPath(cfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
