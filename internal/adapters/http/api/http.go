// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/museumguide/internal/domain/dialogue"
	"github.com/okian/museumguide/internal/domain/envelope"
	"github.com/okian/museumguide/internal/domain/facts"
	"github.com/okian/museumguide/pkg/logger"
	"github.com/okian/museumguide/pkg/metrics"
)

const paintingFact = dialogue.PaintingFact

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Fact resolves one named fact for the painting, defaulting absent fields.
	Fact(ctx context.Context, name, title string) (string, error)
	// People lists the painting's credited artists.
	People(ctx context.Context, title string) ([]string, error)
	// Exists reports whether the collection knows the painting.
	Exists(ctx context.Context, title string) (bool, error)
}

// Server wires HTTP routes for the dialogue backend.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	factHandlers    []*FactHandler
	artistsHandler  *ArtistsHandler
	paintingHandler *PaintingHandler
	actionsHandler  *ActionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, l logger.Logger) *Server {
	if l == nil {
		l = logger.Nop()
	}
	s := &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		artistsHandler:  NewArtistsHandler(deps, l),
		paintingHandler: NewPaintingHandler(deps, l),
		actionsHandler:  NewActionsHandler(),
	}
	for _, name := range facts.Names() {
		s.factHandlers = append(s.factHandlers, NewFactHandler(name, deps, l))
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/metrics", "metrics", s.healthHandler.HandleMetrics)
	route("/stats", "stats", s.statsHandler.HandleStats)

	for _, h := range s.factHandlers {
		route("/"+h.name, h.name, h.HandleFact)
	}
	route("/artists", "artists", s.artistsHandler.HandleArtists)
	route("/"+paintingFact, paintingFact, s.paintingHandler.HandleValidate)
	route("/dummy_query_response", "dummy_query_response", s.actionsHandler.HandleDummyQuery)
	route("/action_success_response", "action_success_response", s.actionsHandler.HandleActionSuccess)
}

// requirePost answers non-POST requests with 405 and reports whether the
// handler should continue.
func requirePost(w http.ResponseWriter, r *http.Request, op string) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	envelope.WriteStatus(w, http.StatusMethodNotAllowed, envelope.Error(message(NewKind(op, ErrMethodNotAllowed))))
	return false
}

// paintingTitle decodes the dialogue request and returns the painting key.
func paintingTitle(r *http.Request, op string) (string, error) {
	req, err := dialogue.Decode(r.Body)
	if err != nil {
		return "", WrapKind(op, ErrMissingTitle, err)
	}
	title, err := req.PaintingTitle()
	if err != nil {
		return "", NewKind(op, ErrMissingTitle)
	}
	return title, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFailure logs err and answers with an in-band error envelope.
func writeFailure(ctx context.Context, w http.ResponseWriter, l logger.Logger, endpoint string, err error) {
	kind := errorKind(err)
	metrics.RecordErrorByEndpoint(endpoint, kind)
	metrics.RecordErrorByType(kind)

	if kind == "lookup" {
		l.Error(ctx, "museum lookup failed", logger.String("endpoint", endpoint), logger.Error(err))
	} else {
		l.Warn(ctx, "rejected request", logger.String("endpoint", endpoint), logger.Error(err))
	}
	envelope.Write(w, envelope.Error(message(err)))
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingTitle):
		return "missing_title"
	case errors.Is(err, ErrLookup):
		return "lookup"
	default:
		return "internal"
	}
}
