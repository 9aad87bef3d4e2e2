package handler

import (
	"encoding/json"
	"net/http"
)

// SuccessEnvelope is the generic success response wrapper.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorEnvelope is the generic error response wrapper.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// ChatEnvelope wraps assistant replies.
type ChatEnvelope struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorEnvelope{Error: msg})
}
