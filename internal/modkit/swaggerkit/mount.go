// Package swaggerkit mounts the Swagger UI and the OpenAPI document
package swaggerkit

import (
	"net/http"

	"khmerfold/internal/platform/config"
	phttp "khmerfold/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the UI under /api/docs/ and the spec at /api/docs/doc.json
// when enabled. base is the servers url advertised to the UI
func Mount(r phttp.Router, cfg config.Conf, base string, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(cfg, base))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/doc.json"),
		httpSwagger.DeepLinking(true),
	))
}
