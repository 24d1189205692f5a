package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope is the wire shape of every response.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteJSON writes an envelope with the given status code.
func WriteJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

// WriteError writes a failure envelope carrying only a generic message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

func writeValidationErrors(w http.ResponseWriter, message string, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: message, Errors: errs})
}

func readJSON(r *http.Request, data any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1048576))
	return dec.Decode(data)
}
