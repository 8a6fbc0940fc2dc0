package middleware

import (
	"context"
	"net/http"
	"time"
)

// NewRequestTimeout bounds every request with a context deadline of d. A
// query still running at the deadline is cancelled by pgx and its pooled
// connection returned. Unlike chimiddleware.Timeout this writes nothing
// itself; handlers map context.DeadlineExceeded to 504.
func NewRequestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
