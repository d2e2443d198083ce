package api

import (
	"net/http"

	"github.com/okian/museumguide/internal/domain/envelope"
	"github.com/okian/museumguide/pkg/logger"
)

// FactHandler answers one fact about the requested painting.
type FactHandler struct {
	name   string
	deps   Dependencies
	logger logger.Logger
}

// NewFactHandler creates a handler for the named fact.
func NewFactHandler(name string, deps Dependencies, l logger.Logger) *FactHandler {
	return &FactHandler{name: name, deps: deps, logger: l.Named("api")}
}

// HandleFact handles POST /{fact} requests.
func (h *FactHandler) HandleFact(w http.ResponseWriter, r *http.Request) {
	op := "api." + h.name
	if !requirePost(w, r, op) {
		return
	}
	title, err := paintingTitle(r, op)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, h.name, err)
		return
	}
	value, err := h.deps.Fact(r.Context(), h.name, title)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, h.name, WrapKind(op, ErrLookup, err))
		return
	}
	envelope.Write(w, envelope.Query(value, nil))
}
