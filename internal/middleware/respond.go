package middleware

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope mirrors the API response body for failures raised before a
// handler runs.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Message: message})
}
