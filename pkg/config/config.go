// Package config handles loading and saving canopy configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/canopy/config.yaml
//   - Data:    ~/.local/share/canopy/ (snapshots, exports)
//   - State:   ~/.local/state/canopy/ (recent datasets)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/canopy/pkg/window"
)

// Dataset represents a registered dataset in the config.
type Dataset struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	WindowDepth int    `yaml:"window_depth,omitempty"` // Visible depth below the focus (1-10)
	Theme       string `yaml:"theme,omitempty"`        // dark, light
	ShowWeights *bool  `yaml:"show_weights,omitempty"`
	Headless    bool   `yaml:"headless,omitempty"` // Compact header mode
}

// WatchConfig controls dataset file watching.
type WatchConfig struct {
	Enabled          *bool  `yaml:"enabled,omitempty"`
	PollIntervalSecs int    `yaml:"poll_interval_secs,omitempty"`
	ForcePoll        bool   `yaml:"force_poll,omitempty"`
	Mode             string `yaml:"mode,omitempty"` // auto, fsnotify, poll
}

// ExportConfig holds defaults for snapshot and database exports.
type ExportConfig struct {
	Directory string `yaml:"directory,omitempty"` // Default output directory
	Format    string `yaml:"format,omitempty"`    // svg, png, sqlite
}

// Config is the top-level configuration for canopy.
type Config struct {
	Datasets  []Dataset      `yaml:"datasets,omitempty"`
	Favorites map[int]string `yaml:"favorites,omitempty"` // Number key (1-9) -> dataset name
	UI        UIConfig       `yaml:"ui,omitempty"`
	Watch     WatchConfig    `yaml:"watch,omitempty"`
	Export    ExportConfig   `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Favorites: make(map[int]string),
		UI: UIConfig{
			WindowDepth: window.DefaultDepth,
			Theme:       "dark",
		},
		Watch: WatchConfig{
			PollIntervalSecs: 2,
			Mode:             "auto",
		},
		Export: ExportConfig{
			Format: "svg",
		},
	}
}

// ConfigDir returns the XDG config directory for canopy.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "canopy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "canopy")
}

// DataDir returns the XDG data directory for canopy.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "canopy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "canopy")
}

// StateDir returns the XDG state directory for canopy.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "canopy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "canopy")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Favorites == nil {
		cfg.Favorites = make(map[int]string)
	}
	if cfg.UI.WindowDepth < 1 {
		cfg.UI.WindowDepth = window.DefaultDepth
	}
	if cfg.Watch.PollIntervalSecs < 1 {
		cfg.Watch.PollIntervalSecs = 2
	}

	// Expand ~ in dataset paths
	for i := range cfg.Datasets {
		cfg.Datasets[i].Path = expandHome(cfg.Datasets[i].Path)
	}
	if cfg.Export.Directory != "" {
		cfg.Export.Directory = expandHome(cfg.Export.Directory)
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// FindDataset returns the dataset with the given name, or nil.
func (c Config) FindDataset(name string) *Dataset {
	for i := range c.Datasets {
		if strings.EqualFold(c.Datasets[i].Name, name) {
			return &c.Datasets[i]
		}
	}
	return nil
}

// FavoriteDataset returns the dataset assigned to number key n (1-9), or nil.
func (c Config) FavoriteDataset(n int) *Dataset {
	name, ok := c.Favorites[n]
	if !ok {
		return nil
	}
	return c.FindDataset(name)
}

// SetFavorite assigns a dataset name to a number key (1-9).
func (c *Config) SetFavorite(n int, datasetName string) {
	if c.Favorites == nil {
		c.Favorites = make(map[int]string)
	}
	if datasetName == "" {
		delete(c.Favorites, n)
	} else {
		c.Favorites[n] = datasetName
	}
}

// WeightsVisible reports whether weights should be shown in the UI. Defaults
// to true when unset.
func (c Config) WeightsVisible() bool {
	if c.UI.ShowWeights == nil {
		return true
	}
	return *c.UI.ShowWeights
}

// WatchEnabled reports whether the dataset watcher should run. Defaults to
// true when unset.
func (c Config) WatchEnabled() bool {
	if c.Watch.Enabled == nil {
		return true
	}
	return *c.Watch.Enabled
}

// ResolvedPath returns the dataset path with ~ expanded.
func (d Dataset) ResolvedPath() string {
	return expandHome(d.Path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
