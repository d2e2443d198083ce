package api

import (
	"net/http"

	"github.com/okian/museumguide/internal/domain/envelope"
	"github.com/okian/museumguide/pkg/logger"
)

// PaintingHandler validates the painting the user named.
type PaintingHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewPaintingHandler creates a new painting validator handler.
func NewPaintingHandler(deps Dependencies, l logger.Logger) *PaintingHandler {
	return &PaintingHandler{deps: deps, logger: l.Named("api")}
}

// HandleValidate handles POST /painting_to_search requests.
func (h *PaintingHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.painting_to_search"
	if !requirePost(w, r, op) {
		return
	}
	title, err := paintingTitle(r, op)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, paintingFact, err)
		return
	}
	ok, err := h.deps.Exists(r.Context(), title)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, paintingFact, WrapKind(op, ErrLookup, err))
		return
	}
	envelope.Write(w, envelope.Validator(ok))
}
