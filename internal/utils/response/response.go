// Package response provides helpers for writing JSON HTTP responses.
//
// Successful persona routes render HTML or redirect; JSON is only used for
// failures and the health check. Every failure has the same shape:
//
//	{ "message": "list personas: ListPersonas: query: database is locked" }
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the error envelope.
type Response struct {
	Message string `json:"message"`
}

// Status is the health check body.
type Status struct {
	Status string `json:"status"`
}

// StatusOK is the value of Status.Status for a healthy service.
const StatusOK = "ok"

// WriteJSON writes data as JSON with the given status code.
//
// Header() → WriteHeader() → body, in that order: headers are locked
// after WriteHeader.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any error into the Response envelope.
func GeneralError(err error) Response {
	return Response{Message: err.Error()}
}

// Error writes err as a 500 {message} response. No route distinguishes
// failure kinds.
func Error(w http.ResponseWriter, err error) error {
	return WriteJSON(w, http.StatusInternalServerError, GeneralError(err))
}
