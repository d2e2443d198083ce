// Package dialogue models the requests a dialogue engine sends to a service
// backend when it needs a fact resolved.
package dialogue

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PaintingFact is the fact name carrying the painting the user asked about.
const PaintingFact = "painting_to_search"

// maxBodyBytes bounds an inbound request body.
const maxBodyBytes = 1 << 20

// Sentinel errors.
var (
	ErrMalformedRequest = errors.New("malformed request")
	ErrMissingFact      = errors.New("missing fact")
)

// Request is the body posted by the dialogue engine.
type Request struct {
	Session map[string]any `json:"session,omitempty"`
	Request struct {
		Type string `json:"type,omitempty"`
	} `json:"request"`
	Context Context `json:"context"`
}

// Context holds the facts known to the engine at call time.
type Context struct {
	Facts map[string]Fact `json:"facts"`
}

// Fact is one resolved slot. GrammarEntry is what the user actually said,
// Value is the ontology value it was mapped to.
type Fact struct {
	Value        any     `json:"value,omitempty"`
	GrammarEntry *string `json:"grammar_entry"`
	SortalType   string  `json:"sort,omitempty"`
}

// Decode reads a Request from r.
func Decode(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(io.LimitReader(r, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return req, nil
}

// GrammarEntry returns the trimmed grammar entry of the named fact.
func (r Request) GrammarEntry(name string) (string, error) {
	f, ok := r.Context.Facts[name]
	if !ok || f.GrammarEntry == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingFact, name)
	}
	entry := strings.TrimSpace(*f.GrammarEntry)
	if entry == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingFact, name)
	}
	return entry, nil
}

// PaintingTitle returns the painting key the user asked about.
func (r Request) PaintingTitle() (string, error) {
	return r.GrammarEntry(PaintingFact)
}

// NewPaintingRequest builds the request a dialogue engine would send for title.
func NewPaintingRequest(title string) Request {
	var req Request
	req.Context.Facts = map[string]Fact{
		PaintingFact: {GrammarEntry: &title},
	}
	return req
}
