package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/orglist/internal/tui"
)

// newBrowseCmd creates the interactive list command.
func newBrowseCmd(a *app) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse organizations interactively",
		Long: `Opens the interactive list. The location line mirrors the current page,
page size and sort; edit it with ':' and move through visited locations with
'b' and 'f'. Selected organization ids are printed on exit.`,
		Example: `  orglist browse
  orglist browse --location "/organizations?page=3&page_size=10&order_by=-modified"`,
		Annotations: map[string]string{quietLogsAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBrowse(cmd, location)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "initial location, e.g. /organizations?page=2")
	return cmd
}

func (a *app) runBrowse(cmd *cobra.Command, location string) error {
	if !a.terminal() {
		return ErrNotTerminal
	}

	options := a.cfg.ListOptions()
	hist, err := startLocation(location, options, nil)
	if err != nil {
		return err
	}

	handlers := a.newView(hist, options)
	model := tui.NewModel(cmd.Context(), handlers, hist, a.logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}

	if ids := model.Selected(); len(ids) > 0 {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(id)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Selected organizations: %s\n", strings.Join(parts, ", "))
	}
	return nil
}
