package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/coffee-catalog/internal/catalog"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
)

// Catalog is the read-only query surface served under /api.
// Both *catalog.Catalog and *catalog.CachedCatalog satisfy it.
type Catalog interface {
	Coffees(crit domain.Criteria) []domain.Coffee
	CoffeeDetail(id string) (catalog.CoffeeDetail, error)
	Facets() catalog.Facets
	Roasters() []catalog.RoasterSummary
	Roaster(id string) (catalog.RoasterDetail, error)
	Producers() []catalog.ProducerSummary
	Producer(id string) (catalog.ProducerDetail, error)
	ProducerMarkers() []domain.Marker
	FlavorMap() []domain.NoteGroup
	FlavorFocus(note string) (domain.NoteFocus, error)
}

// Reviews accepts and summarizes session reviews.
type Reviews interface {
	Submit(ctx context.Context, coffeeID string, in domain.ReviewInput) (domain.Review, error)
	List(coffeeID string) ([]domain.Review, error)
	Perception(coffeeID string) (domain.Perception, error)
}

// Locations cross-checks producer coordinates. A nil Locations disables the
// location route.
type Locations interface {
	CheckLocation(ctx context.Context, producerID string) (domain.LocationCheck, error)
}

// Server exposes the catalog API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	catalog    Catalog
	reviews    Reviews
	locations  Locations
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the API routes and /healthz, /readyz, and /metrics.
func NewServer(addr string, cat Catalog, reviews Reviews, locations Locations, ready sharedobs.ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		mux:       mux,
		catalog:   cat,
		reviews:   reviews,
		locations: locations,
		logger:    logger,
		metrics:   metrics,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	s.handle("GET /api/coffees", s.listCoffees)
	s.handle("GET /api/coffees/{id}", s.getCoffee)
	s.handle("GET /api/coffees/{id}/reviews", s.listReviews)
	s.handle("POST /api/coffees/{id}/reviews", s.submitReview)
	s.handle("GET /api/facets", s.getFacets)
	s.handle("GET /api/roasters", s.listRoasters)
	s.handle("GET /api/roasters/{id}", s.getRoaster)
	s.handle("GET /api/producers", s.listProducers)
	s.handle("GET /api/producers/map", s.producerMap)
	s.handle("GET /api/producers/{id}", s.getProducer)
	s.handle("GET /api/producers/{id}/location", s.checkLocation)
	s.handle("GET /api/flavors", s.flavorMap)
	s.handle("GET /api/flavors/{note}", s.flavorFocus)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}
