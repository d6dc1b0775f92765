package cli

import (
	"fmt"

	"github.com/rshade/orglist/internal/collection"
	"github.com/rshade/orglist/internal/history"
	"github.com/rshade/orglist/internal/listview"
	"github.com/rshade/orglist/internal/querycodec"
)

// nameFilterKey is the endpoint's case-insensitive name filter. The list
// passes it through untouched.
const nameFilterKey = "name__icontains"

// newClient builds the organizations client from the loaded config.
func (a *app) newClient() *collection.Client[collection.Organization] {
	ep := a.cfg.Endpoint
	opts := []collection.Option{
		collection.WithTimeout(ep.Timeout),
		collection.WithLogger(a.logger),
	}
	if ep.Token != "" {
		opts = append(opts, collection.WithToken(ep.Token))
	}
	return collection.New[collection.Organization](ep.BaseURL, ep.CollectionPath, opts...)
}

// newView wires a list view over hist.
func (a *app) newView(hist *history.Memory, options listview.Options) *listview.Handlers[collection.Organization] {
	return listview.NewView[collection.Organization](
		a.newClient(),
		hist,
		options,
		listview.WithLogger[collection.Organization](a.logger),
	)
}

// startLocation turns a --location value into the first history entry.
// Overrides from flags are folded into the query so the location stays the
// single source of the initial parameters.
func startLocation(raw string, options listview.Options, overrides []listview.Override) (*history.Memory, error) {
	loc := history.ParseLocation(raw, options.Path)

	values, err := querycodec.Parse(loc.Query)
	if err != nil {
		return nil, fmt.Errorf("--location %q: %w", raw, err)
	}
	if len(overrides) > 0 {
		loc.Query = querycodec.Encode(options.Resolve(values, overrides...).Values())
	}
	return history.NewMemory(loc), nil
}
