package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/orglist/internal/logging"
)

// setupLogging configures logging from the loaded config and CLI flags and
// stores the logger in the command context.
func (a *app) setupLogging(cmd *cobra.Command) error {
	loggingCfg := a.cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
	}

	quiet := cmd.Annotations[quietLogsAnnotation] == "true"
	result, err := logging.New(loggingCfg.ToLoggingConfig(quiet), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	a.logResult = &result
	a.logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile() && !quiet {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Logging to %s\n", result.FilePath)
	}

	cmd.SetContext(a.logger.WithContext(cmd.Context()))
	a.logger.Debug().
		Str("command", cmd.Name()).
		Str("base_url", a.cfg.Endpoint.BaseURL).
		Msg("command started")
	return nil
}

// cleanupLogging closes the log file handle.
func (a *app) cleanupLogging(_ *cobra.Command) error {
	if a.logResult == nil {
		return nil
	}
	return a.logResult.Close()
}
