package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rshade/pagetable/internal/config"
	"github.com/rshade/pagetable/internal/logging"
)

// setupLogging configures logging from the loaded config and CLI flags.
// Commands annotated with logTargetFile own the terminal, so their logs go
// to a file even in debug mode.
func setupLogging(cmd *cobra.Command, loggingCfg config.LoggingConfig) logging.LogPathResult {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}
	if cmd.Annotations[annotationLogTarget] == logTargetFile {
		loggingCfg = loggingCfg.ForTerminalUI()
	}

	lc := loggingCfg.ToLoggingConfig()
	lc.Stderr = cmd.ErrOrStderr()
	result := logging.NewLoggerWithPath(lc)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = result.Logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	return logResult.Close()
}
