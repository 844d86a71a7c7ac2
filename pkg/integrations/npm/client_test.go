package npm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/px/pkg/integrations"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Options{BaseURL: server.URL + "/"})
	client.SetHTTPClient(server.Client())
	return client
}

func TestNewClientDefaults(t *testing.T) {
	if got := NewClient(Options{}).BaseURL(); got != DefaultRegistry {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultRegistry)
	}
	if got := NewClient(Options{BaseURL: " https://npm.example.com// "}).BaseURL(); got != "https://npm.example.com" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestFetchPackument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/@types/react" {
			t.Errorf("path = %q, want /@types/react", r.URL.Path)
		}
		if accept := r.Header.Get("Accept"); !strings.HasPrefix(accept, "application/vnd.npm.install-v1+json") {
			t.Errorf("Accept = %q", accept)
		}
		w.Write([]byte(`{
			"name": "@types/react",
			"dist-tags": {"latest": "18.0.0"},
			"versions": {
				"18.0.0": {"name": "@types/react", "dist": {"tarball": "x"}},
				"17.0.1": {"deprecated": "use 18"},
				"19.0.0-rc": {"dependencies": {"csstype": "^3"}, "deprecated": ""}
			},
			"modified": "2024-01-01"
		}`))
	})

	doc, err := client.FetchPackument(context.Background(), "@types/react")
	if err != nil {
		t.Fatalf("FetchPackument() error: %v", err)
	}
	if doc.Name != "@types/react" {
		t.Errorf("Name = %q", doc.Name)
	}

	var numbers []string
	for _, v := range doc.Versions {
		numbers = append(numbers, v.Number)
	}
	if got := strings.Join(numbers, ","); got != "18.0.0,17.0.1,19.0.0-rc" {
		t.Errorf("versions = %s, want document order", got)
	}
	if !doc.Versions[1].IsDeprecated() {
		t.Error("17.0.1 should be deprecated")
	}

	latest, ok := doc.Latest()
	if !ok || latest.Number != "19.0.0-rc" {
		t.Errorf("Latest() = %v, %v; want 19.0.0-rc", latest, ok)
	}
	if latest.IsDeprecated() {
		t.Error("empty deprecation notice should not count as deprecated")
	}
}

func TestFetchPackumentNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchPackument(context.Background(), "@types/missing")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFetchPackumentMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"versions": [1, 2`))
	})

	if _, err := client.FetchPackument(context.Background(), "@types/broken"); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestPackumentUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		latest     string
		deprecated bool
		hasLatest  bool
	}{
		{"empty object", `{}`, "", false, false},
		{"empty versions", `{"versions": {}}`, "", false, false},
		{"null versions", `{"versions": null}`, "", false, false},
		{"bool deprecated", `{"versions": {"1.0.0": {"deprecated": true}}}`, "1.0.0", true, true},
		{"false deprecated", `{"versions": {"1.0.0": {"deprecated": false}}}`, "1.0.0", false, true},
		{"null version body", `{"versions": {"1.0.0": null}}`, "1.0.0", false, true},
		{"last not highest", `{"versions": {"2.0.0": {}, "1.5.0": {"deprecated": "old"}}}`, "1.5.0", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Packument
			if err := json.Unmarshal([]byte(tt.data), &doc); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			latest, ok := doc.Latest()
			if ok != tt.hasLatest {
				t.Fatalf("Latest() ok = %v, want %v", ok, tt.hasLatest)
			}
			if latest.Number != tt.latest {
				t.Errorf("Latest() = %q, want %q", latest.Number, tt.latest)
			}
			if latest.IsDeprecated() != tt.deprecated {
				t.Errorf("IsDeprecated() = %v, want %v", latest.IsDeprecated(), tt.deprecated)
			}
		})
	}
}
