package kit

import (
	"encoding/json"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Envelope is the response shape shared by every storefront endpoint.
// Count is only present on list responses, Timestamp only on successes.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Count     *int   `json:"count,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`

	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a single-item success envelope. Catalog responses must
// never be cached, so successes carry no-store headers.
func WriteData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	WriteJSON(w, status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// WriteList writes a success envelope carrying a collection and its count.
func WriteList(w http.ResponseWriter, status int, data any, count int) {
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	WriteJSON(w, status, Envelope{
		Success:   true,
		Data:      data,
		Count:     &count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, errMsg, message string) {
	WriteJSON(w, status, Envelope{
		Success:   false,
		Error:     errMsg,
		Message:   message,
		RequestID: chimw.GetReqID(r.Context()),
	})
}
