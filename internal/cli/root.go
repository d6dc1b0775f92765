package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/orglist/internal/config"
	"github.com/rshade/orglist/internal/logging"
)

// quietLogsAnnotation marks commands that own the terminal. Their logs go to
// the configured file or nowhere.
const quietLogsAnnotation = "orglist/quiet-logs"

// ErrNotTerminal is returned when an interactive command runs without a TTY.
var ErrNotTerminal = errors.New("browse requires an interactive terminal; use 'orglist list' instead")

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// app is the state shared by every command of one invocation.
type app struct {
	lookupEnv func(string) (string, bool)
	// terminal reports whether the process is attached to a TTY.
	terminal func() bool

	cfg       *config.Config
	logResult *logging.Result
	logger    zerolog.Logger
}

// NewRootCmd creates the root Cobra command for the orglist CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for
// testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	a := &app{
		lookupEnv: lookupEnv,
		terminal: func() bool {
			return isTerminal(os.Stdin) && isTerminal(os.Stdout)
		},
		logger: zerolog.Nop(),
	}

	cmd := &cobra.Command{
		Use:           "orglist",
		Short:         "Browse a paginated organizations collection",
		Long:          "orglist pages, sorts and selects organizations from a remote collection endpoint.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			return a.setupLogging(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.cleanupLogging(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default $HOME/.orglist/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("base-url", "", "collection endpoint base URL (overrides config and "+config.EnvBaseURL+")")

	cmd.AddCommand(
		newBrowseCmd(a),
		newListCmd(a),
		newExportCmd(a),
		newServeMockCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

const rootCmdExample = `  # Browse organizations interactively
  orglist browse

  # Open the list at a specific location
  orglist browse --location "/organizations?page=2&order_by=-created"

  # Print one page as JSON
  orglist list --page 2 --page-size 10 --sort created:desc --output json

  # Export every organization as JSON lines
  orglist export > organizations.jsonl

  # Serve a local mock collection
  orglist serve-mock --count 120 --latency 200ms --jitter 400ms`

// loadConfig resolves the config file (flag, then environment, then the
// default path), applies environment and flag overrides and validates the
// result.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg := config.New()
	if cmd.Annotations[defaultsOnlyAnnotation] != "true" {
		var err error
		if cfg, err = config.Load(a.explicitConfigPath(cmd)); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	cfg.ApplyEnv(a.lookupEnv)

	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		cfg.Endpoint.BaseURL = baseURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.cfg = cfg
	return nil
}

// explicitConfigPath returns the --config flag or $ORGLIST_CONFIG, or "" when
// neither is set.
func (a *app) explicitConfigPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	if v, ok := a.lookupEnv(config.EnvConfig); ok {
		return v
	}
	return ""
}

// configPath is explicitConfigPath falling back to the default location.
func (a *app) configPath(cmd *cobra.Command) string {
	if path := a.explicitConfigPath(cmd); path != "" {
		return path
	}
	return config.DefaultPath()
}

// newConfigCmd creates the config command group.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(a))
	return cmd
}
