package health

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Config holds the engine's tunables (spec §4.10/§4.11). Values start from
// DefaultConfig and are overlaid by the fields a YAML file sets
// (FileConfig, MergeFile); there are no CLI flags or environment
// variables for them.
type Config struct {
	// MinRunEvery is the minimum spacing between main-loop iterations, in
	// seconds. Must be >= 1.
	MinRunEvery int `yaml:"min_run_every,omitempty"`

	// HibernationDelay is how long, in seconds, evaluation is postponed
	// after a suspend/resume is detected (realtime vs monotonic clock
	// skew exceeding 2x the expected tick).
	HibernationDelay int `yaml:"hibernation_delay,omitempty"`

	// RuleDirs are the directories health rule files are loaded from, in
	// increasing precedence order (stock shipped rules, then
	// user-supplied overrides), mirroring Netdata's stock/user split.
	RuleDirs []string `yaml:"rule_dirs,omitempty"`

	// SilencerFile is the path to the JSON silencer ruleset (§4.2, §6).
	SilencerFile string `yaml:"silencer_file,omitempty"`

	// LogMaxEvents bounds each host's event log before it is trimmed
	// (§4.7).
	LogMaxEvents int `yaml:"log_max_events,omitempty"`
}

// FileConfig is the pointer-field YAML shape used to merge a config file's
// settings over the defaults, following domain.FileConfig's convention:
// unset fields are nil and left untouched by merging.
type FileConfig struct {
	MinRunEvery      *int      `yaml:"min_run_every,omitempty"`
	HibernationDelay *int      `yaml:"hibernation_delay,omitempty"`
	RuleDirs         *[]string `yaml:"rule_dirs,omitempty"`
	SilencerFile     *string   `yaml:"silencer_file,omitempty"`
	LogMaxEvents     *int      `yaml:"log_max_events,omitempty"`
}

// LoadFileConfig reads a YAML health-engine config file, matching
// domain.LoadConfigFile's convention: a missing file is not an error and
// yields a nil *FileConfig (leaving the default values untouched).
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a trusted config file path, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading health config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing health config file: %w", err)
	}
	return &fc, nil
}

// DefaultConfig returns the engine defaults (§4.10/§4.11).
func DefaultConfig() Config {
	return Config{
		MinRunEvery:      10,
		HibernationDelay: 60,
		LogMaxEvents:     1000,
	}
}

// MergeFile overlays non-nil fields of fc onto a copy of c, matching
// domain.FileConfig's layering: values already in c are kept for every
// field fc doesn't explicitly set.
func (c Config) MergeFile(fc *FileConfig) Config {
	if fc == nil {
		return c
	}
	if fc.MinRunEvery != nil {
		c.MinRunEvery = *fc.MinRunEvery
	}
	if fc.HibernationDelay != nil {
		c.HibernationDelay = *fc.HibernationDelay
	}
	if fc.RuleDirs != nil {
		c.RuleDirs = *fc.RuleDirs
	}
	if fc.SilencerFile != nil {
		c.SilencerFile = *fc.SilencerFile
	}
	if fc.LogMaxEvents != nil {
		c.LogMaxEvents = *fc.LogMaxEvents
	}
	return c
}

// MinRunEveryDuration returns MinRunEvery as a duration, clamped to at
// least one second (spec §4.10: "must be >= 1").
func (c Config) MinRunEveryDuration() time.Duration {
	n := c.MinRunEvery
	if n < 1 {
		n = 1
	}
	return time.Duration(n) * time.Second
}

// HibernationDelayDuration returns HibernationDelay as a duration.
func (c Config) HibernationDelayDuration() time.Duration {
	return time.Duration(c.HibernationDelay) * time.Second
}
