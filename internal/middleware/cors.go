package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/rs/cors"
)

var (
	allowedMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodOptions, http.MethodDelete, http.MethodPut,
	}
	allowedHeaders = []string{"Content-Type"}
)

// NewCORSHandler returns a middleware that applies CORS headers based on
// allowedOrigins ("*" allows any origin).
//
// Every response, errors included, carries the allowed methods and headers
// and a JSON content type. OPTIONS requests are answered here with 200 and an
// empty body, before routing, so preflights never reach a handler.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:       allowedOrigins,
		AllowedMethods:       allowedMethods,
		AllowedHeaders:       allowedHeaders,
		OptionsPassthrough:   true,
		OptionsSuccessStatus: http.StatusOK,
	})
	wildcard := slices.Contains(allowedOrigins, "*")
	methods := strings.Join(allowedMethods, ", ")
	headers := strings.Join(allowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if wildcard {
				h.Set("Access-Control-Allow-Origin", "*")
			}
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Content-Type", "application/json")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
