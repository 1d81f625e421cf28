package config

import (
	"github.com/rshade/pagetable/internal/logging"
)

// ToLoggingConfig converts LoggingConfig to logging.Config for use with
// the internal/logging package.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
		Caller: lc.Level == "debug" || lc.Level == "trace",
	}
}

// ForTerminalUI returns a copy that writes to DefaultLogFile when no file is
// configured, so log lines never draw over the full-screen table.
func (lc LoggingConfig) ForTerminalUI() LoggingConfig {
	if lc.File == "" {
		lc.File = DefaultLogFile()
	}
	return lc
}
