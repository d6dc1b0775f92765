package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/orglist/internal/cli/pagination"
	"github.com/rshade/orglist/internal/collection"
	"github.com/rshade/orglist/internal/listview"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

const listTimeLayout = "2006-01-02 15:04"

// ErrUnknownOutput is returned for an unsupported --output value.
var ErrUnknownOutput = errors.New("output must be one of table, json, yaml")

// listOutput is the document printed by list in json and yaml formats.
type listOutput struct {
	Location      string                    `json:"location"      yaml:"location"`
	Pagination    pagination.Meta           `json:"pagination"    yaml:"pagination"`
	Organizations []collection.Organization `json:"organizations" yaml:"organizations"`
}

// newListCmd creates the command that prints one page.
func newListCmd(a *app) *cobra.Command {
	var (
		location string
		name     string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of organizations",
		Long: `Fetches a single page and prints it. Parameters resolve from --location,
then the list defaults; --page, --page-size and --sort override both.`,
		Example: `  orglist list
  orglist list --page 3 --page-size 10
  orglist list --sort modified:desc --output yaml
  orglist list --location "/organizations?page=2&order_by=-created" --name acme`,
	}
	params := pagination.AddFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return a.runList(cmd, location, name, output, params)
	}

	cmd.Flags().StringVar(&location, "location", "", "start from this location, e.g. /organizations?page=2")
	cmd.Flags().StringVar(&name, "name", "", "only organizations whose name contains this text")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, location, name, output string, params *pagination.Params) error {
	switch output {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("%w, got %q", ErrUnknownOutput, output)
	}

	options := a.cfg.ListOptions()
	overrides, err := params.Overrides(options)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("name") {
		overrides = append(overrides, listview.WithExtra(nameFilterKey, name))
	}

	hist, err := startLocation(location, options, overrides)
	if err != nil {
		return err
	}
	view := a.newView(hist, options)

	res := view.Mount().Do(cmd.Context())
	view.Complete(res)
	if res.Err != nil {
		return fmt.Errorf("fetching organizations: %w", res.Err)
	}

	props := view.Props()
	doc := listOutput{
		Location:      hist.Location().String(),
		Pagination:    pagination.NewMeta(props.ViewState),
		Organizations: props.Results,
	}

	out := cmd.OutOrStdout()
	switch output {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(doc)
	default:
		return renderListTable(out, doc)
	}
}

// renderListTable writes the page as aligned columns followed by a summary.
func renderListTable(w io.Writer, doc listOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMODIFIED\tCREATED\tUSERS\tTEAMS")
	for _, org := range doc.Organizations {
		counts := org.SummaryFields.RelatedFieldCounts
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\n",
			org.ID,
			org.Name,
			org.Modified.Local().Format(listTimeLayout),
			org.Created.Local().Format(listTimeLayout),
			counts.Users,
			counts.Teams,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	meta := doc.Pagination
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w, "\nPage %d of %d · %d organizations · order_by=%s\n",
		meta.CurrentPage, max(meta.TotalPages, 1), meta.TotalItems, meta.OrderBy)
	return err
}
