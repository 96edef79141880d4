package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edustack/lessonlab/pkg/routes"
)

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}

func get(t *testing.T, handler http.Handler, method, path string) (int, string) {
	t.Helper()

	r := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w.Code, w.Body.String()
}

func TestBuild_Routes(t *testing.T) {
	sys := routes.New()
	sys.RegisterRoute(routes.Route{Method: "GET", Pattern: "/healthz", Handler: named("health")})

	handler := sys.Build()

	code, body := get(t, handler, "GET", "/healthz")
	if code != http.StatusOK || body != "health" {
		t.Fatalf("GET /healthz = (%d, %q), want (200, health)", code, body)
	}
}

func TestBuild_NestedGroups(t *testing.T) {
	sys := routes.New()
	sys.RegisterGroup(routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{
				Prefix: "/documents",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: named("upload")},
					{Method: "GET", Pattern: "/{id}", Handler: named("find")},
					{Method: "GET", Pattern: "/class/{classId}", Handler: named("list")},
				},
			},
			{
				Prefix: "/classes",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: named("classes")},
				},
			},
		},
	})

	handler := sys.Build()

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"POST", "/api/documents", "upload"},
		{"GET", "/api/documents/abc", "find"},
		{"GET", "/api/documents/class/xyz", "list"},
		{"GET", "/api/classes", "classes"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			code, body := get(t, handler, tt.method, tt.path)
			if code != http.StatusOK || body != tt.want {
				t.Fatalf("%s %s = (%d, %q), want (200, %q)", tt.method, tt.path, code, body, tt.want)
			}
		})
	}
}

func TestBuild_MethodMismatch(t *testing.T) {
	sys := routes.New()
	sys.RegisterGroup(routes.Group{
		Prefix: "/api",
		Routes: []routes.Route{
			{Method: "DELETE", Pattern: "/documents/{id}", Handler: named("delete")},
		},
	})

	code, _ := get(t, sys.Build(), "GET", "/api/documents/abc")
	if code != http.StatusMethodNotAllowed {
		t.Fatalf("GET on DELETE route = %d, want %d", code, http.StatusMethodNotAllowed)
	}
}
