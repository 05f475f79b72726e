package swaggerkit

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"khmerfold/internal/platform/config"
	phttp "khmerfold/internal/platform/net/http"
	"khmerfold/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, enabled bool, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), config.New().Prefix("CORE_API_"), "/api/v1", enabled)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rec
}

func TestMount_Disabled(t *testing.T) {
	if rec := serve(t, false, "/api/docs/doc.json"); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDocJSON_Decorated(t *testing.T) {
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "(dev)")

	rec := serve(t, true, "/api/docs/doc.json")
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatal(err)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	testkit.MustContain(t, spec["info"].(map[string]any)["title"].(string), "(dev)")

	op := spec["paths"].(map[string]any)["/analyze"].(map[string]any)["post"].(map[string]any)
	resps := op["responses"].(map[string]any)
	for _, code := range []string{"200", "400", "500"} {
		if _, ok := resps[code]; !ok {
			t.Fatalf("response %s missing: %v", code, resps)
		}
	}
}

func TestDocJSON_BadDoc(t *testing.T) {
	testkit.Swap(t, &docReader, func() string { return "{" })
	if rec := serve(t, true, "/api/docs/doc.json"); rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestEnsureServers(t *testing.T) {
	t.Parallel()

	spec := map[string]any{"swagger": "2.0"}
	ensureServers(spec, "/x")
	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("spec = %v", spec)
	}

	spec = map[string]any{"openapi": "3.1.0", "servers": []any{"kept"}}
	ensureServers(spec, "/x")
	if spec["openapi"] != "3.0.3" || spec["servers"].([]any)[0] != "kept" {
		t.Fatalf("spec = %v", spec)
	}
}

func TestRegister_Mutators(t *testing.T) {
	testkit.Swap(t, &mutators, nil)
	Register(nil)
	Register(func(m map[string]any) { m["x-khmerfold"] = true })
	if len(mutators) != 1 {
		t.Fatalf("mutators = %d", len(mutators))
	}
	testkit.MustContain(t, serve(t, true, "/api/docs/doc.json").Body.String(), `"x-khmerfold":true`)
}
