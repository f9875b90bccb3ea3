package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorResponseDTO struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string, fields ...string) {
	respondJSON(w, status, ErrorResponseDTO{
		Code:    code,
		Message: message,
		Fields:  fields,
	})
}
