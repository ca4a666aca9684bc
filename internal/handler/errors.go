package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// errorBody is the error response shape shared by every endpoint.
type errorBody struct {
	Timestamp string            `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// respondWithJSON formats and sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, errorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	})
}

func writeValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	respondWithJSON(w, http.StatusBadRequest, errorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    http.StatusBadRequest,
		Error:     http.StatusText(http.StatusBadRequest),
		Message:   "Validation failed",
		Errors:    fieldErrors,
	})
}
