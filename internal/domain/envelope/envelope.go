// Package envelope builds the fixed JSON response shapes the dialogue engine
// expects from a service backend.
package envelope

import (
	"encoding/json"
	"net/http"
)

// Envelope versions understood by the dialogue engine.
const (
	Version10 = "1.0"
	Version11 = "1.1"
)

// Status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// fullConfidence is reported for every result; the backend never guesses.
const fullConfidence = 1.0

// Envelope is the top-level response object.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    Data   `json:"data"`
}

// Data carries the versioned payload. Result and IsValid are only present on
// the query and validator shapes respectively.
type Data struct {
	Version string    `json:"version"`
	Result  *[]Result `json:"result,omitempty"`
	IsValid *bool     `json:"is_valid,omitempty"`
}

// Result is a single query answer.
type Result struct {
	Value        any     `json:"value"`
	Confidence   float64 `json:"confidence"`
	GrammarEntry *string `json:"grammar_entry"`
}

// Answer is the input to MultipleQuery.
type Answer struct {
	Value        any
	GrammarEntry *string
}

// Error reports a failed request in-band.
func Error(message string) Envelope {
	if message == "" {
		message = "unknown error"
	}
	return Envelope{
		Status:  StatusError,
		Message: message,
		Data:    Data{Version: Version10},
	}
}

// Query answers with a single value.
func Query(value any, grammarEntry *string) Envelope {
	results := []Result{{Value: value, Confidence: fullConfidence, GrammarEntry: grammarEntry}}
	return Envelope{
		Status: StatusSuccess,
		Data:   Data{Version: Version11, Result: &results},
	}
}

// MultipleQuery answers with zero or more values.
func MultipleQuery(answers []Answer) Envelope {
	results := make([]Result, 0, len(answers))
	for _, a := range answers {
		results = append(results, Result{Value: a.Value, Confidence: fullConfidence, GrammarEntry: a.GrammarEntry})
	}
	return Envelope{
		Status: StatusSuccess,
		Data:   Data{Version: Version10, Result: &results},
	}
}

// Validator reports whether an entity is valid.
func Validator(isValid bool) Envelope {
	return Envelope{
		Status: StatusSuccess,
		Data:   Data{Version: Version10, IsValid: &isValid},
	}
}

// ActionSuccess acknowledges an action with no payload.
func ActionSuccess() Envelope {
	return Envelope{
		Status: StatusSuccess,
		Data:   Data{Version: Version11},
	}
}

// DummyQuery is a fixed placeholder answer used while wiring new dialogue domains.
func DummyQuery() Envelope {
	return Query("dummy", nil)
}

// Write renders e as the response body. The dialogue engine reads status from
// the body, so the HTTP status defaults to 200 even for errors.
func Write(w http.ResponseWriter, e Envelope) {
	WriteStatus(w, http.StatusOK, e)
}

// WriteStatus renders e with an explicit HTTP status.
func WriteStatus(w http.ResponseWriter, status int, e Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(e)
}
