// Package config loads and validates mview.yml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = "mview.yml"

// Config is the project configuration.
type Config struct {
	// SrcDir is the directory scanned for .mv template files.
	SrcDir string `yaml:"src_dir"`
	// OutSuffix replaces the .mv extension on generated files.
	OutSuffix string `yaml:"out_suffix"`
	// BuilderImport is the import path of the runtime builder package.
	BuilderImport string `yaml:"builder_import"`

	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// DebounceMS batches rapid file events into one rebuild.
	DebounceMS int `yaml:"debounce_ms"`
	// Serve is the live-reload listen address, enabled with --serve.
	Serve string `yaml:"serve"`
}

// Debounce returns the debounce window as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// DefaultConfig returns the configuration used when no mview.yml exists.
func DefaultConfig() *Config {
	return &Config{
		SrcDir:        ".",
		OutSuffix:     ".mv.go",
		BuilderImport: "github.com/recera/mview/builder",
		Watch: WatchConfig{
			DebounceMS: 100,
			Serve:      "localhost:35729",
		},
	}
}

// Load reads mview.yml from dir, falling back to defaults when the file does
// not exist. Missing fields keep their default values.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to dir/mview.yml.
func (c *Config) Save(dir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.SrcDir == "" {
		return fmt.Errorf("src_dir must not be empty")
	}
	if c.OutSuffix == "" || c.OutSuffix == ".mv" {
		return fmt.Errorf("out_suffix must differ from the template extension")
	}
	if c.BuilderImport == "" {
		return fmt.Errorf("builder_import must not be empty")
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	return nil
}
