package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/renanvzd/nlw-pocket/internal/ctxkeys"
)

const RequestIDHeader = "X-Request-ID"

// WithRequestID tags the request with an id, reusing the caller's when present,
// and echoes it in the response headers.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := ctxkeys.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
