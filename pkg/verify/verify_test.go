package verify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/px/pkg/errors"
	"github.com/matzehuels/px/pkg/integrations/npm"
)

func TestAvailabilityString(t *testing.T) {
	tests := []struct {
		a    Availability
		want string
	}{
		{Unknown, "unknown"},
		{HasTypes, "has-types"},
		{NoTypes, "no-types"},
		{Availability(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.a, got, tt.want)
		}
		if got := parseAvailability(tt.want); tt.a <= NoTypes && got != tt.a {
			t.Errorf("parseAvailability(%q) = %v, want %v", tt.want, got, tt.a)
		}
	}
	var zero Availability
	if zero != Unknown || zero.Known() {
		t.Error("zero Availability should be Unknown")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if a, _ := s.Get(ctx, "react"); a != Unknown {
		t.Errorf("Get(unseen) = %v, want unknown", a)
	}
	s.Set(ctx, "react", HasTypes)
	s.Set(ctx, "chalk", NoTypes)
	if a, _ := s.Get(ctx, "react"); a != HasTypes {
		t.Errorf("Get(react) = %v, want has-types", a)
	}

	entries, _ := s.List(ctx)
	if len(entries) != 2 || entries[0].Package != "chalk" || entries[1].Package != "react" {
		t.Errorf("List() = %v", entries)
	}

	s.Clear(ctx)
	if entries, _ := s.List(ctx); len(entries) != 0 {
		t.Errorf("List() after Clear = %v", entries)
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	if err := s.Set(ctx, "react", HasTypes); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if a, _ := s.Get(ctx, "react"); a != Unknown {
		t.Errorf("NullStore should not remember, got %v", a)
	}
	if err := s.Flush(ctx); err != nil {
		t.Errorf("Flush error: %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "px", FileName)

	s := NewFileStore(path)
	if err := s.Set(ctx, "react", HasTypes); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	s.Set(ctx, "@scope/pkg", HasTypes)
	s.Set(ctx, "chalk", NoTypes)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("Set should not write before Flush")
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	var layout fileLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		t.Fatalf("cache file is not valid JSON: %v", err)
	}
	if strings.Join(layout.PackagesWithTypes, ",") != "@scope/pkg,react" {
		t.Errorf("packagesWithTypes = %v", layout.PackagesWithTypes)
	}
	if strings.Join(layout.PackagesWithoutTypes, ",") != "chalk" {
		t.Errorf("packagesWithoutTypes = %v", layout.PackagesWithoutTypes)
	}

	fresh := NewFileStore(path)
	for pkg, want := range map[string]Availability{"react": HasTypes, "chalk": NoTypes, "lodash": Unknown} {
		if got, err := fresh.Get(ctx, pkg); err != nil || got != want {
			t.Errorf("Get(%s) = %v, %v; want %v", pkg, got, err, want)
		}
	}
}

func TestFileStoreFlushOnlyWhenDirty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)

	s := NewFileStore(path)
	s.Get(ctx, "react")
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clean store should not create a file")
	}

	s.Set(ctx, "react", HasTypes)
	s.Flush(ctx)

	s.Set(ctx, "react", HasTypes)
	if s.dirty {
		t.Error("identical Set should not mark store dirty")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)
	os.WriteFile(path, []byte("{not json"), 0644)

	s := NewFileStore(path)
	a, err := s.Get(ctx, "react")
	if err != nil {
		t.Fatalf("corrupt file should be treated as empty, got %v", err)
	}
	if a != Unknown {
		t.Errorf("Get = %v, want unknown", a)
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !json.Valid(data) {
		t.Error("corrupt file should be overwritten with valid JSON")
	}
}

func TestFileStoreReadError(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir) // a directory cannot be read as a file

	_, err := s.Get(context.Background(), "react")
	if !errors.Is(err, errors.ErrCodeCacheRead) {
		t.Errorf("error = %v, want CACHE_READ", err)
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)

	s := NewFileStore(path)
	s.Set(ctx, "react", HasTypes)
	s.Flush(ctx)

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Clear should remove the file")
	}
	if a, _ := NewFileStore(path).Get(ctx, "react"); a != Unknown {
		t.Errorf("Get after Clear = %v", a)
	}
	if err := s.Clear(ctx); err != nil {
		t.Errorf("Clear on missing file: %v", err)
	}
}

type fakeFetcher struct {
	doc *npm.Packument
	err error
}

func (f fakeFetcher) FetchPackument(ctx context.Context, pkg string) (*npm.Packument, error) {
	return f.doc, f.err
}

func TestRegistryChecker(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
		want Availability
	}{
		{"latest usable", `{"versions": {"1.0.0": {"deprecated": "old"}, "2.0.0": {}}}`, 200, HasTypes},
		{"latest deprecated", `{"versions": {"2.0.0": {}, "1.0.0": {"deprecated": "stub types"}}}`, 200, NoTypes},
		{"no versions", `{"versions": {}}`, 200, NoTypes},
		{"not found", `{"error": "Not found"}`, 404, NoTypes},
		{"server error", ``, 503, NoTypes},
		{"forbidden", ``, 403, NoTypes},
		{"malformed", `{"versions": `, 200, NoTypes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := npm.NewClient(npm.Options{BaseURL: server.URL})
			client.SetHTTPClient(server.Client())

			if got := NewRegistryChecker(client, nil).Check(context.Background(), "@types/x"); got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistryCheckerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	checker := NewRegistryChecker(npm.NewClient(npm.Options{BaseURL: url}), nil)
	if got := checker.Check(context.Background(), "@types/x"); got != NoTypes {
		t.Errorf("Check() = %v, want no-types", got)
	}
}

func TestRegistryCheckerFetcherError(t *testing.T) {
	checker := NewRegistryChecker(fakeFetcher{err: context.DeadlineExceeded}, nil)
	if got := checker.Check(context.Background(), "@types/x"); got != NoTypes {
		t.Errorf("Check() = %v, want no-types", got)
	}
}
