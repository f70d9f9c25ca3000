package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the request correlation id in both directions.
const Header = "X-Request-ID"

type contextKey struct{}

// Middleware reuses an incoming X-Request-ID or generates a new UUID, stores
// it in the request context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(Header, id)

		ctx := context.WithValue(r.Context(), contextKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the request id, or "" outside Middleware.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
