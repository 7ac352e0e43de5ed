package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stwalsh4118/grouplog/internal/pathutil"
	"github.com/stwalsh4118/grouplog/internal/search"
)

// Store backend names accepted in store.backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// DefaultConfigPath is the path to the global config file.
const DefaultConfigPath = "~/.grouplog/config.yaml"

// ConfigPathEnv overrides DefaultConfigPath when set.
const ConfigPathEnv = "GROUPLOG_CONFIG"

// Default store locations per backend.
var defaultStorePaths = map[string]string{
	BackendFile:   "~/.grouplog/sessions",
	BackendSQLite: "~/.grouplog/sessions.db",
	BackendBadger: "~/.grouplog/badger",
}

// Config represents ~/.grouplog/config.yaml.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Sort  SortConfig  `yaml:"sort"`
	Log   LogConfig   `yaml:"log"`
}

// StoreConfig selects and locates the session store.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// SortConfig holds the initial sort direction of each list column.
// Values are neutral, increasing or decreasing.
type SortConfig struct {
	Date     string `yaml:"date,omitempty"`
	Group    string `yaml:"group,omitempty"`
	Duration string `yaml:"duration,omitempty"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Backend: BackendSQLite},
		Sort: SortConfig{
			Date:     "decreasing",
			Group:    "neutral",
			Duration: "neutral",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Path returns the config path, honoring GROUPLOG_CONFIG.
func Path() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return pathutil.ExpandPath(p)
	}
	return pathutil.ExpandPath(DefaultConfigPath)
}

// Load reads the config at path.
// Returns Default() if the file doesn't exist (not an error).
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills empty fields after the YAML overlay.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}
	if c.Store.Path == "" {
		c.Store.Path = defaultStorePaths[c.Store.Backend]
	}
	c.Store.Path = pathutil.ExpandPath(c.Store.Path)
	if c.Sort.Date == "" {
		c.Sort.Date = def.Sort.Date
	}
	if c.Sort.Group == "" {
		c.Sort.Group = def.Sort.Group
	}
	if c.Sort.Duration == "" {
		c.Sort.Duration = def.Sort.Duration
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case "", BackendMemory, BackendFile, BackendSQLite, BackendBadger:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	for name, v := range map[string]string{
		"sort.date":     c.Sort.Date,
		"sort.group":    c.Sort.Group,
		"sort.duration": c.Sort.Duration,
	} {
		if _, err := search.ParseSortState(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}
