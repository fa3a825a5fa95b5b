package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"
)

// envelope is the uniform response wrapper: every endpoint, success or
// failure, replies with {success, data?, error?, timestamp}.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Timestamp string `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{
		Success:   true,
		Data:      data,
		Timestamp: timestamp(),
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{
		Success:   false,
		Error:     message,
		Timestamp: timestamp(),
	})
}

// writeErrorDetail includes the underlying error text. Only used when the
// server runs in development mode.
func writeErrorDetail(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, envelope{
		Success:   false,
		Error:     message,
		Detail:    detail,
		Timestamp: timestamp(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
