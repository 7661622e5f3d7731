package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Environment variables consulted by Load, highest precedence last.
const (
	EnvConfigFile   = "LEAD_DIGEST_CONFIG"
	EnvAddr         = "LEAD_DIGEST_ADDR"
	EnvPort         = "PORT"
	EnvStaticPage   = "LEAD_DIGEST_STATIC_PAGE"
	EnvMaxBodyBytes = "LEAD_DIGEST_MAX_BODY_BYTES"
	EnvLogLevel     = "LEAD_DIGEST_LOG_LEVEL"
	EnvLogFile      = "LEAD_DIGEST_LOG_FILE"
)

// MaxFetchTimeout bounds a single page fetch. A file may lower it, nothing raises it.
const MaxFetchTimeout = 30 * time.Second

type Server struct {
	Addr            string        `yaml:"addr"`
	StaticPage      string        `yaml:"static_page"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Fetch struct {
	Timeout      time.Duration     `yaml:"timeout"`
	DialTimeout  time.Duration     `yaml:"dial_timeout"`
	MaxBodyBytes int64             `yaml:"max_body_bytes"`
	Headers      map[string]string `yaml:"headers"`
}

type Extract struct {
	Selectors []string `yaml:"selectors"`
}

type Summary struct {
	MinWords int `yaml:"min_words"`
}

type Keywords struct {
	Limit     int      `yaml:"limit"`
	StopWords []string `yaml:"stop_words"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is built once at process start and treated as read-only afterwards.
type Config struct {
	Server   Server   `yaml:"server"`
	Fetch    Fetch    `yaml:"fetch"`
	Extract  Extract  `yaml:"extract"`
	Summary  Summary  `yaml:"summary"`
	Keywords Keywords `yaml:"keywords"`
	Log      Log      `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(defaultsYAML, &c); err != nil {
		return nil, fmt.Errorf("parse defaults: %w", err)
	}
	return &c, nil
}

// Load layers the defaults, the YAML file at path (if any) and the
// environment. An empty path falls back to $LEAD_DIGEST_CONFIG.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = getenv(EnvConfigFile)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvPort); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvStaticPage); v != "" {
		c.Server.StaticPage = v
	}
	if v := getenv(EnvMaxBodyBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxBodyBytes, err)
		}
		c.Fetch.MaxBodyBytes = n
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	return nil
}

// Validate reports the first setting that would make the service unusable.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Server.Addr) == "":
		return errors.New("server.addr is required")
	case c.Fetch.Timeout <= 0 || c.Fetch.Timeout > MaxFetchTimeout:
		return fmt.Errorf("fetch.timeout must be positive and at most %s", MaxFetchTimeout)
	case c.Fetch.MaxBodyBytes <= 0:
		return errors.New("fetch.max_body_bytes must be positive")
	case len(c.Extract.Selectors) == 0:
		return errors.New("extract.selectors must not be empty")
	case c.Keywords.Limit <= 0:
		return errors.New("keywords.limit must be positive")
	case c.Summary.MinWords < 0:
		return errors.New("summary.min_words must not be negative")
	}
	return nil
}
