package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Keywords       []string `toml:"keywords"`
	StopWords      []string `toml:"stop_words"`
	ExtraStopWords []string `toml:"extra_stop_words"`
	MinCount       int      `toml:"min_count"`
	ReadingWPM     int      `toml:"reading_wpm"`
	Multiline      bool     `toml:"multiline"`
	Sentences      int      `toml:"sentences"`
	Seed           int64    `toml:"seed"`
	DBPath         string   `toml:"db_path"`
	LogLevel       string   `toml:"log_level"`
}

// DefaultPath returns ~/.config/chatstats/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chatstats", "config.toml"), nil
}

func Default(home string) *Config {
	return &Config{
		StopWords:  append([]string(nil), defaultStopWords...),
		MinCount:   2,
		ReadingWPM: 250,
		Seed:       1,
		DBPath:     filepath.Join(home, ".config", "chatstats", "chatstats.db"),
		LogLevel:   "info",
	}
}

// Load reads the config at path. An empty path means DefaultPath; a missing
// file at the default location yields the defaults, a missing explicit file
// is an error.
func Load(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := Default(home)

	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, ".config", "chatstats", "config.toml")
	}
	path = expandHome(path, home)

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.DBPath = expandHome(cfg.DBPath, home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ReadingWPM <= 0 {
		return fmt.Errorf("reading_wpm must be positive, got %d", c.ReadingWPM)
	}
	if c.MinCount < 0 {
		return fmt.Errorf("min_count must not be negative, got %d", c.MinCount)
	}
	if c.Sentences < 0 {
		return fmt.Errorf("sentences must not be negative, got %d", c.Sentences)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// StopSet merges stop_words and extra_stop_words into a lookup set.
func (c *Config) StopSet() map[string]bool {
	set := make(map[string]bool, len(c.StopWords)+len(c.ExtraStopWords))
	for _, w := range c.StopWords {
		set[w] = true
	}
	for _, w := range c.ExtraStopWords {
		set[w] = true
	}
	return set
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
