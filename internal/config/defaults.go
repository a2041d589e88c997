package config

import (
	"os"
	"path/filepath"
)

const (
	defaultDataDir        = "~/.local/share/brewflow"
	defaultLogFile        = "~/.local/share/brewflow/brewflow.log"
	defaultTickIntervalMS = 100
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "brewflow", "config.toml")
	}
	return expandHome("~/.config/brewflow/config.toml")
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DataDir: defaultDataDir,
		LogFile: defaultLogFile,
		Session: Session{
			TickIntervalMS: defaultTickIntervalMS,
		},
		Methods: map[string]MethodConfig{
			"v60": {
				BloomRatio: 3.0,
				PourCount:  2,
				Dose:       Range{Min: 10, Max: 40},
				Yield:      Range{Min: 150, Max: 600},
				Ratio:      Range{Min: 14, Max: 18},
				TempC:      Range{Min: 85, Max: 96},
			},
			"aeropress": {
				BloomRatio: 2.0,
				PourCount:  1,
				Dose:       Range{Min: 10, Max: 20},
				Yield:      Range{Min: 100, Max: 260},
				Ratio:      Range{Min: 10, Max: 17},
				TempC:      Range{Min: 80, Max: 95},
			},
		},
	}
}
