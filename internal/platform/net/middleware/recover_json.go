package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/platform/logger"
	pnet "khmerfold/internal/platform/net"
)

// RecoverJSON turns a panic into the standard 500 envelope and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, env := pnet.Error(perr.PanicErrf("panic recovered"), pnet.RequestID(r.Context()))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(env)
		}()
		next.ServeHTTP(w, r)
	})
}
