package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/px/pkg/errors"
)

func noEnv(string) (string, bool) { return "", false }

func mapEnv(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(LoadOptions{File: filepath.Join(dir, "missing.toml"), WorkDir: dir, Getenv: noEnv})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Default()
	if cfg.Registry != want.Registry || cfg.Concurrency != 8 || cfg.Timeout != 10*time.Second || cfg.Retries != 0 {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if !cfg.Types || !cfg.Cache.Enabled {
		t.Error("types and cache should default to enabled")
	}
	if cfg.LogLevel() != log.WarnLevel {
		t.Errorf("LogLevel() = %v, want warn", cfg.LogLevel())
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, FileName)
	writeFile(t, file, `
registry = "https://file.example.com"
concurrency = 4
timeout = "5s"

[cache]
path = "/tmp/file-cache.json"

[log]
level = "info"
`)
	writeFile(t, filepath.Join(dir, EnvFile), "PX_CONCURRENCY=2\nPX_LOG_LEVEL=debug\nOTHER=ignored\n")

	cfg, err := Load(LoadOptions{
		File:    file,
		WorkDir: dir,
		Getenv:  mapEnv(map[string]string{EnvLogLevel: "error", EnvTypes: "false"}),
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Registry != "https://file.example.com" {
		t.Errorf("Registry = %q (file)", cfg.Registry)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v (file)", cfg.Timeout)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want .env value 2", cfg.Concurrency)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want environment value", cfg.Log.Level)
	}
	if cfg.Types {
		t.Error("PX_TYPES=false should disable types")
	}
	if p, _ := cfg.CachePath(); p != "/tmp/file-cache.json" {
		t.Errorf("CachePath() = %q", p)
	}
}

func TestLoadDoesNotMutateEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EnvFile), "PX_REGISTRY=https://dotenv.example.com\n")
	t.Setenv(EnvRegistry, "")
	os.Unsetenv(EnvRegistry)

	cfg, err := Load(LoadOptions{File: filepath.Join(dir, "none.toml"), WorkDir: dir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Registry != "https://dotenv.example.com" {
		t.Errorf("Registry = %q", cfg.Registry)
	}
	if _, ok := os.LookupEnv(EnvRegistry); ok {
		t.Error(".env values leaked into the process environment")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{"malformed toml", "registry = ", nil},
		{"unknown key", "registri = \"x\"", nil},
		{"bad duration", "timeout = \"soon\"", nil},
		{"zero concurrency", "concurrency = 0", nil},
		{"negative retries", "retries = -1", nil},
		{"bad level", "[log]\nlevel = \"loud\"", nil},
		{"bad env int", "", map[string]string{EnvConcurrency: "many"}},
		{"bad env bool", "", map[string]string{EnvCache: "maybe"}},
		{"empty registry", "", map[string]string{EnvRegistry: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			file := filepath.Join(dir, FileName)
			writeFile(t, file, tt.file)

			_, err := Load(LoadOptions{File: file, WorkDir: dir, Getenv: mapEnv(tt.env)})
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if path != filepath.Join("/custom/config", "px", FileName) {
		t.Errorf("Path() = %q", path)
	}

	cache, _ := DefaultCachePath()
	if !strings.HasSuffix(cache, filepath.Join("px", CacheFileName)) {
		t.Errorf("DefaultCachePath() = %q", cache)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".config", "px")) {
		t.Errorf("Dir() = %q, want ~/.config/px", dir)
	}
}
