package api

import (
	"net/http"

	"github.com/okian/museumguide/internal/domain/envelope"
)

// ActionsHandler serves the fixed acknowledgements used while a dialogue
// domain is being wired up.
type ActionsHandler struct{}

// NewActionsHandler creates a new actions handler.
func NewActionsHandler() *ActionsHandler {
	return &ActionsHandler{}
}

// HandleDummyQuery handles POST /dummy_query_response requests.
func (h *ActionsHandler) HandleDummyQuery(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, "api.dummy_query_response") {
		return
	}
	envelope.Write(w, envelope.DummyQuery())
}

// HandleActionSuccess handles POST /action_success_response requests.
func (h *ActionsHandler) HandleActionSuccess(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, "api.action_success_response") {
		return
	}
	envelope.Write(w, envelope.ActionSuccess())
}
