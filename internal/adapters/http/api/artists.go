package api

import (
	"net/http"

	"github.com/okian/museumguide/internal/domain/envelope"
	"github.com/okian/museumguide/pkg/logger"
)

// ArtistsHandler lists every artist credited on a painting.
type ArtistsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewArtistsHandler creates a new artists handler.
func NewArtistsHandler(deps Dependencies, l logger.Logger) *ArtistsHandler {
	return &ArtistsHandler{deps: deps, logger: l.Named("api")}
}

// HandleArtists handles POST /artists requests.
func (h *ArtistsHandler) HandleArtists(w http.ResponseWriter, r *http.Request) {
	const op = "api.artists"
	if !requirePost(w, r, op) {
		return
	}
	title, err := paintingTitle(r, op)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, "artists", err)
		return
	}
	names, err := h.deps.People(r.Context(), title)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, "artists", WrapKind(op, ErrLookup, err))
		return
	}
	answers := make([]envelope.Answer, len(names))
	for i, name := range names {
		answers[i] = envelope.Answer{Value: name}
	}
	envelope.Write(w, envelope.MultipleQuery(answers))
}
