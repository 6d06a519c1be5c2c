package config

import (
	"github.com/rshade/homeenergy/internal/logging"
)

// ToLoggingConfig converts the logging section for internal/logging.
// A configured File selects file output, otherwise stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// ForDashboard returns the logging config for the interactive dashboard.
// Logs must not reach the terminal while Bubble Tea owns it, so a file is
// always used, falling back to logging.DefaultLogFile.
func (lc LoggingConfig) ForDashboard() logging.Config {
	out := lc.ToLoggingConfig()
	if out.File == "" {
		out.File = logging.DefaultLogFile()
	}
	out.Output = logging.OutputFile
	out.Format = logging.FormatJSON
	return out
}
