package handler

import (
	"net/http"
	"testing"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

type recordingMux struct {
	patterns []string
	handlers []http.Handler
}

func (m *recordingMux) Handle(pattern string, handler http.Handler) {
	m.patterns = append(m.patterns, pattern)
	m.handlers = append(m.handlers, handler)
}

func TestMountPath(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"", "/autocomplete/"},
		{"/", "/"},
		{"widgets/ac/", "/widgets/ac/"},
	}
	for _, tc := range cases {
		got := MountPath(WithBasePath(tc.base))
		if got != tc.want {
			t.Fatalf("MountPath(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}
}

func TestRegisterRoutes_ServesUnderBasePath(t *testing.T) {
	svc := newService(t, autocomplete.FieldType{Name: "person", Source: personSource()})

	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, svc, WithBasePath("/api/ac"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/api/ac/" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	res := serve(t, mux, http.MethodGet, "/api/ac/person/items?field_name=lead&search=ada", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
}

func TestRegisterRoutes_RequiresMuxAndService(t *testing.T) {
	if _, err := RegisterRoutes(nil, autocomplete.NewService(autocomplete.NewRegistry())); err == nil {
		t.Fatalf("expected error for nil mux")
	}
	if _, err := RegisterRoutes(&recordingMux{}, nil); err == nil {
		t.Fatalf("expected error for nil service")
	}
}

func TestRegisterRoutes_RootBasePath(t *testing.T) {
	svc := newService(t, autocomplete.FieldType{Name: "person", Source: personSource()})
	mux := &recordingMux{}
	pattern, err := RegisterRoutes(mux, svc, WithBasePath("/"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/" || len(mux.handlers) != 1 {
		t.Fatalf("unexpected registration %q %d", pattern, len(mux.handlers))
	}
	res := serve(t, mux.handlers[0], http.MethodGet, "/person/items?field_name=lead&search=ada", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
}
