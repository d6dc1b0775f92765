// Package mockserver serves a local organizations collection endpoint with
// the same query grammar and response shape as the real API. It exists to
// demo and test the list against something that paginates, sorts and fails
// the way the real endpoint does, including slow and reordered responses.
package mockserver

import (
	"cmp"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rshade/orglist/internal/collection"
	"github.com/rshade/orglist/internal/logging"
)

// Endpoint limits.
const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

// Config controls the generated data and artificial latency.
type Config struct {
	Count int
	// Latency is added to every list response; Jitter adds a random extra
	// delay in [0, Jitter) so concurrent requests can complete out of order.
	Latency time.Duration
	Jitter  time.Duration
	Epoch   time.Time
}

// Server is the mock collection endpoint.
type Server struct {
	cfg     Config
	orgs    []collection.Organization
	metrics *metrics
	logger  zerolog.Logger
	router  chi.Router
}

// New builds a server holding cfg.Count generated organizations.
func New(cfg Config, logger zerolog.Logger) *Server {
	if cfg.Epoch.IsZero() {
		cfg.Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	s := &Server{
		cfg:     cfg,
		orgs:    GenerateOrganizations(cfg.Count, cfg.Epoch),
		metrics: newMetrics(),
		logger:  logging.ComponentLogger(logger, "mockserver"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	r.Get(collection.OrganizationsPath, s.listOrganizations)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd // Header read bound.
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Int("organizations", len(s.orgs)).Msg("mock endpoint listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second) //nolint:mnd // Drain bound.
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

type listResponse struct {
	Count    int                       `json:"count"`
	Next     *string                   `json:"next"`
	Previous *string                   `json:"previous"`
	Results  []collection.Organization `json:"results"`
}

func (s *Server) listOrganizations(w http.ResponseWriter, r *http.Request) {
	if !s.delay(r.Context()) {
		return
	}

	query := r.URL.Query()

	page, ok := positiveInt(query.Get("page"), 1)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	pageSize, ok := positiveInt(query.Get("page_size"), DefaultPageSize)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid page size.")
		return
	}
	pageSize = min(pageSize, MaxPageSize)

	matches := filterByName(s.orgs, query.Get("name__icontains"))

	orderBy := cmp.Or(query.Get("order_by"), "id")
	less, ok := orderFunc(orderBy)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Cannot order by field \""+strings.TrimPrefix(orderBy, "-")+"\".")
		return
	}
	slices.SortStableFunc(matches, less)

	start := (page - 1) * pageSize
	if start >= len(matches) && page != 1 {
		writeDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	end := min(start+pageSize, len(matches))

	resp := listResponse{
		Count:   len(matches),
		Results: matches[min(start, end):end],
	}
	if end < len(matches) {
		resp.Next = pageURL(r.URL, page+1)
	}
	if page > 1 {
		resp.Previous = pageURL(r.URL, page-1)
	}
	writeJSON(w, http.StatusOK, resp)
}

// delay sleeps for the configured latency. It returns false if the client
// went away first.
func (s *Server) delay(ctx context.Context) bool {
	d := s.cfg.Latency
	if s.cfg.Jitter > 0 {
		d += rand.N(s.cfg.Jitter) //nolint:gosec // Jitter does not need a secure source.
	}
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func positiveInt(raw string, fallback int) (int, bool) {
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// filterByName returns a fresh, never nil, slice so an empty page encodes as
// "results": [].
func filterByName(orgs []collection.Organization, needle string) []collection.Organization {
	needle = strings.ToLower(needle)
	out := []collection.Organization{}
	for _, o := range orgs {
		if needle == "" || strings.Contains(strings.ToLower(o.Name), needle) {
			out = append(out, o)
		}
	}
	return out
}

// orderFunc returns the comparison for an order_by value. Ties break on id so
// pages never overlap.
func orderFunc(orderBy string) (func(a, b collection.Organization) int, bool) {
	key, desc := strings.CutPrefix(orderBy, "-")

	var field func(a, b collection.Organization) int
	switch key {
	case "id":
		field = func(a, b collection.Organization) int { return cmp.Compare(a.ID, b.ID) }
	case "name":
		field = func(a, b collection.Organization) int { return strings.Compare(a.Name, b.Name) }
	case "created":
		field = func(a, b collection.Organization) int { return a.Created.Compare(b.Created) }
	case "modified":
		field = func(a, b collection.Organization) int { return a.Modified.Compare(b.Modified) }
	default:
		return nil, false
	}

	return func(a, b collection.Organization) int {
		c := field(a, b)
		if desc {
			c = -c
		}
		return cmp.Or(c, cmp.Compare(a.ID, b.ID))
	}, true
}

func pageURL(u *url.URL, page int) *string {
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	s := u.Path + "?" + q.Encode()
	return &s
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
