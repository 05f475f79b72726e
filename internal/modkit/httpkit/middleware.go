package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"khmerfold/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack; the zero value is usable
type StackOptions struct {
	// Timeout cancels request contexts, default 30s
	Timeout time.Duration
	// Slow marks access log lines at warn, default 1s
	Slow time.Duration
	// Quiet lists paths kept out of the access log
	Quiet []string
	CORS  middleware.CORSOptions
}

// CommonStack returns the baseline middleware slice for the versioned api
func CommonStack(o ...StackOptions) []func(http.Handler) http.Handler {
	var opt StackOptions
	if len(o) > 0 {
		opt = o[0]
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	if opt.Slow <= 0 {
		opt.Slow = time.Second
	}

	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.Scope,

		// observability outside recovery so panics log as 500
		middleware.AccessLog(middleware.AccessLogOptions{Slow: opt.Slow, Skip: opt.Quiet}),
		middleware.RecoverJSON,

		middleware.NoCache(),
		middleware.CORS(opt.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.AllowContentType("application/json"),
		middleware.StripSlashes(),
		middleware.Timeout(opt.Timeout),
	}
}
