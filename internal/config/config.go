package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TobiSchelling/worldnews/internal/feed"
	"github.com/TobiSchelling/worldnews/internal/sources"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Regions []Region `yaml:"regions"`
	Fetch   Fetch    `yaml:"fetch"`
	Cache   Cache    `yaml:"cache"`
	Refresh Refresh  `yaml:"refresh"`
	Stream  Stream   `yaml:"stream"`
	Server  Server   `yaml:"server"`
	Logging Logging  `yaml:"logging"`
}

type Region struct {
	ID    string        `yaml:"id"`
	Feeds []feed.Source `yaml:"feeds"`
}

type Fetch struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

type Cache struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

type Refresh struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

type Stream struct {
	BatchSize  int `yaml:"batch_size"`
	IntervalMS int `yaml:"interval_ms"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for worldnews.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "worldnews")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/worldnews/config.yaml > ./config.yaml.
// Returns os.ErrNotExist when no file is found; callers may fall back to
// the embedded defaults.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", os.ErrNotExist
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		// The embedded default must always parse.
		panic(fmt.Sprintf("invalid embedded default config: %v", err))
	}
	return cfg
}

// parse parses YAML bytes into a Config, applying defaults. A config that
// lists no regions inherits the full default feed table.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Fetch:   Fetch{TimeoutSeconds: 10, UserAgent: "WorldNews/1.0"},
		Cache:   Cache{TTLSeconds: 120},
		Refresh: Refresh{IntervalSeconds: 60},
		Stream:  Stream{BatchSize: 3, IntervalMS: 30},
		Server:  Server{Port: 3000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Regions) == 0 {
		var def Config
		if err := yaml.Unmarshal(DefaultConfigYAML, &def); err != nil {
			return nil, fmt.Errorf("parsing default regions: %w", err)
		}
		cfg.Regions = def.Regions
	}

	return cfg, nil
}

// SourceRegions converts the configured regions into registry entries.
func (c *Config) SourceRegions() []sources.Region {
	regions := make([]sources.Region, len(c.Regions))
	for i, r := range c.Regions {
		regions[i] = sources.Region{ID: r.ID, Sources: r.Feeds}
	}
	return regions
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh.IntervalSeconds) * time.Second
}

func (c *Config) StreamInterval() time.Duration {
	return time.Duration(c.Stream.IntervalMS) * time.Millisecond
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
