// Package listview keeps a paginated, sortable, selectable list in sync with
// its location (the address bar query string) and with a remote collection.
//
// The package is split the same way the list screen is:
//   - QueryParams and Options translate location values into fetch parameters
//   - Store holds the ViewState rendered by the presentation layer
//   - Orchestrator runs the fetch lifecycle and writes the location back
//   - Handlers turn user gestures into new fetches or selection changes
//
// Fetches are never cancelled. Every Begin issues a new request token and
// Complete drops any result whose token is not the latest, so the last
// initiated request always wins regardless of the order responses arrive in.
//
// None of the types here are safe for concurrent writers: Begin, Complete and
// the Handlers methods are meant to run on a single event loop (Bubble Tea's
// Update in this repository). Only Request.Do may run elsewhere.
package listview
