package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for values that would break a session.
// All findings are collected so the user sees everything at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DataDir == "" {
		problems = append(problems, "data_dir must not be empty")
	}
	if c.Session.TickIntervalMS <= 0 {
		problems = append(problems, "session.tick_interval_ms must be positive")
	}
	if c.Session.TickIntervalMS > 1000 {
		problems = append(problems, "session.tick_interval_ms must be at most 1000")
	}

	if len(c.Methods) == 0 {
		problems = append(problems, "at least one [methods.*] section is required")
	}
	for name, mc := range c.Methods {
		if mc.BloomRatio <= 0 {
			problems = append(problems, fmt.Sprintf("methods.%s.bloom_ratio must be positive", name))
		}
		if mc.PourCount < 1 {
			problems = append(problems, fmt.Sprintf("methods.%s.pour_count must be at least 1", name))
		}
		for field, r := range map[string]Range{
			"dose": mc.Dose, "yield": mc.Yield, "ratio": mc.Ratio, "temp_c": mc.TempC,
		} {
			if r.Min > r.Max {
				problems = append(problems, fmt.Sprintf("methods.%s.%s: min exceeds max", name, field))
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration:\n  " + strings.Join(problems, "\n  "))
}
