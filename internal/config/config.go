// Package config loads and validates the brewflow configuration file.
// Scaling ranges and bloom ratios are method-specific configuration, not
// constants, so new brew methods only need a config entry.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"brewflow/internal/domain"
)

//go:embed sample_config.toml
var sampleConfig string

// Range is an advisory [Min, Max] band. Values outside it produce warnings,
// never errors.
type Range struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Contains reports whether v falls inside the range, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// MethodConfig carries the per-method scaling rules and recommended bands.
type MethodConfig struct {
	BloomRatio float64 `toml:"bloom_ratio"`
	PourCount  int     `toml:"pour_count"`
	Dose       Range   `toml:"dose"`
	Yield      Range   `toml:"yield"`
	Ratio      Range   `toml:"ratio"`
	TempC      Range   `toml:"temp_c"`
}

// Session holds timer settings for the live session.
type Session struct {
	TickIntervalMS int `toml:"tick_interval_ms"`
}

// Config is the full application configuration.
type Config struct {
	DataDir string                  `toml:"data_dir"`
	LogFile string                  `toml:"log_file"`
	Session Session                 `toml:"session"`
	Methods map[string]MethodConfig `toml:"methods"`
}

// TickInterval returns the session tick resolution as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Session.TickIntervalMS) * time.Millisecond
}

// MethodFor returns the configuration for a brew method.
func (c *Config) MethodFor(m domain.Method) (MethodConfig, bool) {
	mc, ok := c.Methods[string(m)]
	return mc, ok
}

// DatabasePath returns the brew-log database location under the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "brewlogs.db")
}

// EnsureDirectories creates the directories the application writes to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataDir, filepath.Dir(c.LogFile)}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads the config file at path, falling back to defaults for a
// missing file. An empty path consults the BREWFLOW_CONFIG environment
// variable, then the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("BREWFLOW_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.normalize()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the embedded sample configuration to path, refusing
// to overwrite an existing file.
func WriteSample(path string) error {
	path = expandHome(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s: %w", path, domain.ErrAlreadyExists)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// normalize expands home-relative paths and applies env overrides.
func (c *Config) normalize() {
	if dir := os.Getenv("BREWFLOW_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	c.DataDir = expandHome(c.DataDir)
	c.LogFile = expandHome(c.LogFile)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
