package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/orglist/internal/config"
)

// defaultsOnlyAnnotation marks commands that start from the built-in
// defaults instead of reading the config file.
const defaultsOnlyAnnotation = "orglist/defaults-only"

// ErrConfigExists is returned by config init when the file already exists.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// newConfigInitCmd creates the config init command for initializing configuration.
func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a configuration file holding the default endpoint, list and logging
settings. The file is written to --config, $ORGLIST_CONFIG or
$HOME/.orglist/config.yaml, in that order.`,
		Example: `  # Create the default configuration
  orglist config init

  # Create configuration, overwriting existing
  orglist config init --force`,
		Annotations: map[string]string{defaultsOnlyAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

func (a *app) runConfigInit(cmd *cobra.Command, force bool) error {
	path := a.configPath(cmd)
	if path == "" {
		return errors.New("cannot determine a configuration path, use --config")
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return ErrConfigExists
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	// Environment overrides are not persisted.
	if err := config.New().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
