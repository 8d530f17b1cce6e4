package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/canopy/pkg/window"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.WindowDepth != window.DefaultDepth {
		t.Errorf("expected default window depth %d, got %d", window.DefaultDepth, cfg.UI.WindowDepth)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", cfg.UI.Theme)
	}
	if cfg.Watch.PollIntervalSecs != 2 {
		t.Errorf("expected poll interval 2, got %d", cfg.Watch.PollIntervalSecs)
	}
	if cfg.Favorites == nil {
		t.Error("expected favorites map to be initialized")
	}
	if !cfg.WeightsVisible() {
		t.Error("weights should be visible by default")
	}
	if !cfg.WatchEnabled() {
		t.Error("watching should be enabled by default")
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.UI.WindowDepth != window.DefaultDepth {
		t.Errorf("expected default config, got window depth %d", cfg.UI.WindowDepth)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
datasets:
  - name: flare
    path: ~/data/flare.json
  - name: prod
    path: /srv/data/tree.json

favorites:
  1: flare
  2: prod

ui:
  window_depth: 4
  theme: light
  show_weights: false

watch:
  enabled: false
  poll_interval_secs: 5

export:
  directory: ~/exports
  format: png
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(cfg.Datasets))
	}
	if cfg.Datasets[0].Name != "flare" {
		t.Errorf("expected dataset name 'flare', got %q", cfg.Datasets[0].Name)
	}
	// Path should have ~ expanded
	home, _ := os.UserHomeDir()
	expectedPath := filepath.Join(home, "data/flare.json")
	if cfg.Datasets[0].Path != expectedPath {
		t.Errorf("expected expanded path %q, got %q", expectedPath, cfg.Datasets[0].Path)
	}
	if cfg.Datasets[1].Path != "/srv/data/tree.json" {
		t.Errorf("expected absolute path preserved, got %q", cfg.Datasets[1].Path)
	}

	if cfg.Favorites[1] != "flare" {
		t.Errorf("expected favorite 1 = 'flare', got %q", cfg.Favorites[1])
	}

	if cfg.UI.WindowDepth != 4 {
		t.Errorf("expected window_depth 4, got %d", cfg.UI.WindowDepth)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected theme 'light', got %q", cfg.UI.Theme)
	}
	if cfg.WeightsVisible() {
		t.Error("show_weights: false should hide weights")
	}
	if cfg.WatchEnabled() {
		t.Error("watch.enabled: false should disable watching")
	}
	if cfg.Watch.PollIntervalSecs != 5 {
		t.Errorf("expected poll interval 5, got %d", cfg.Watch.PollIntervalSecs)
	}
	if cfg.Export.Format != "png" {
		t.Errorf("expected export format 'png', got %q", cfg.Export.Format)
	}
	expectedExport := filepath.Join(home, "exports")
	if cfg.Export.Directory != expectedExport {
		t.Errorf("expected export dir %q, got %q", expectedExport, cfg.Export.Directory)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFrom_ClampsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
ui:
  window_depth: 0
watch:
  poll_interval_secs: -1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UI.WindowDepth != window.DefaultDepth {
		t.Errorf("zero window_depth should reset to default, got %d", cfg.UI.WindowDepth)
	}
	if cfg.Watch.PollIntervalSecs != 2 {
		t.Errorf("negative poll interval should reset to 2, got %d", cfg.Watch.PollIntervalSecs)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Datasets = []Dataset{{Name: "flare", Path: "/data/flare.json"}}
	cfg.SetFavorite(1, "flare")
	cfg.UI.WindowDepth = 3

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if len(loaded.Datasets) != 1 || loaded.Datasets[0].Name != "flare" {
		t.Errorf("datasets did not round-trip: %+v", loaded.Datasets)
	}
	if loaded.Favorites[1] != "flare" {
		t.Errorf("favorites did not round-trip: %+v", loaded.Favorites)
	}
	if loaded.UI.WindowDepth != 3 {
		t.Errorf("window depth did not round-trip: %d", loaded.UI.WindowDepth)
	}
}

func TestFindDataset(t *testing.T) {
	cfg := Config{Datasets: []Dataset{
		{Name: "Flare", Path: "/a"},
		{Name: "prod", Path: "/b"},
	}}

	if d := cfg.FindDataset("flare"); d == nil || d.Path != "/a" {
		t.Errorf("case-insensitive lookup failed: %+v", d)
	}
	if d := cfg.FindDataset("missing"); d != nil {
		t.Errorf("expected nil for unknown dataset, got %+v", d)
	}
}

func TestFavorites(t *testing.T) {
	cfg := Config{Datasets: []Dataset{{Name: "flare", Path: "/a"}}}

	cfg.SetFavorite(1, "flare")
	if d := cfg.FavoriteDataset(1); d == nil || d.Name != "flare" {
		t.Errorf("FavoriteDataset(1) = %+v", d)
	}
	if d := cfg.FavoriteDataset(2); d != nil {
		t.Errorf("expected nil for unassigned key, got %+v", d)
	}

	cfg.SetFavorite(1, "")
	if d := cfg.FavoriteDataset(1); d != nil {
		t.Errorf("clearing a favorite should remove it, got %+v", d)
	}
}

func TestConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgtest")
	if got := ConfigDir(); got != "/tmp/xdgtest/canopy" {
		t.Errorf("ConfigDir = %q", got)
	}
	if got := ConfigPath(); got != "/tmp/xdgtest/canopy/config.yaml" {
		t.Errorf("ConfigPath = %q", got)
	}
}
