package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the uniform error envelope for all endpoints.
type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// internalError logs the underlying fault and responds with a generic
// message so no internal detail leaks to clients.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("Internal error", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
