package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
)

type testEndpoint struct {
	method, path string
	data         bool
	noCommand    bool
}

func (e *testEndpoint) Route() (string, string, http.HandlerFunc) {
	return e.method, e.path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (e *testEndpoint) RequiresData() bool { return e.data }

func (e *testEndpoint) Command(func() string) *cobra.Command {
	if e.noCommand {
		return nil
	}
	return &cobra.Command{Use: e.method + e.path}
}

func TestRegistry_RegisterRoutes(t *testing.T) {
	r := NewRegistry()
	r.Register(&testEndpoint{method: "GET", path: "/health"})
	r.Register(&testEndpoint{method: "GET", path: "/api/teachers", data: true})

	gated := 0
	mux := http.NewServeMux()
	r.RegisterRoutes(mux, func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			gated++
			next(w, req)
		}
	})

	for _, path := range []string{"/health", "/api/teachers"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
	if gated != 1 {
		t.Errorf("data middleware ran %d times, want 1", gated)
	}
}

func TestRegistry_BuildCommands(t *testing.T) {
	r := NewRegistry()
	r.Register(&testEndpoint{method: "GET", path: "/health"})
	r.Register(&testEndpoint{method: "GET", path: "/api/teachers"})
	r.Register(&testEndpoint{method: "GET", path: "/api/teachers/{code}/grid"})
	r.Register(&testEndpoint{method: "GET", path: "/swagger.json", noCommand: true})

	root := r.BuildCommands(func() string { return "" })
	names := make(map[string]int)
	for _, c := range root.Commands() {
		names[c.Name()] = len(c.Commands())
	}
	if _, ok := names["GET/health"]; !ok {
		t.Errorf("top-level health command missing: %v", names)
	}
	if names["teachers"] != 2 {
		t.Errorf("teachers group has %d commands, want 2", names["teachers"])
	}
	if len(names) != 2 {
		t.Errorf("commands = %v", names)
	}
}

func TestGroupFor(t *testing.T) {
	tests := map[string]string{
		"/health":                     "",
		"/api/schedule":               "schedule",
		"/api/classes/{section}/grid": "classes",
		"/swagger.json":               "",
	}
	for path, want := range tests {
		if got := groupFor(path); got != want {
			t.Errorf("groupFor(%q) = %q, want %q", path, got, want)
		}
	}
}
