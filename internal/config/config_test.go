package config_test

import (
	"path/filepath"
	"testing"

	"github.com/outpost-tools/fac-resolve/internal/config"
)

func TestLoadMissingYieldsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PortalBaseURL != config.DefaultPortalBaseURL {
		t.Errorf("got %q, want default portal base URL", cfg.PortalBaseURL)
	}
}

func TestSaveLoadYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &config.Config{PortalBaseURL: "https://example.test", ModsDir: "/mods"}
	if err := config.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.PortalBaseURL != want.PortalBaseURL || got.ModsDir != want.ModsDir {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSaveLoadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := &config.Config{PortalBaseURL: "https://example.test", ProxyURL: "http://proxy:8080"}
	if err := config.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ProxyURL != want.ProxyURL {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
