// Package middleware provides the HTTP middleware chain of the travel map API:
// request ids, CORS and preflight handling, access logging, panic recovery,
// per-request deadlines and request body limits.
package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes {"error": msg} with the given status. Middleware
// cannot use the handler package's writer without an import cycle.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
