package middleware

import (
	"net/http"
	"time"

	"khmerfold/internal/platform/logger"
	pnet "khmerfold/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Scope copies chi's request id onto the logger context, echoes it back and
// stamps the start time. Mount after RequestID
func Scope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := pnet.WithStarted(r.Context(), time.Now())
		if id := chimw.GetReqID(ctx); id != "" {
			ctx = logger.WithRequest(ctx, id)
			w.Header().Set(chimw.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
