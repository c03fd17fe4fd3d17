package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"indexdeck/internal/logging"
)

const (
	DefaultServerURL      = "http://localhost:9696"
	DefaultRequestTimeout = 30
)

// Server is the management server hosting the cache service
type Server struct {
	URL            string `toml:"url"`
	Token          string `toml:"token"`
	RequestTimeout int    `toml:"request_timeout"` // seconds
}

// Catalog locates the local indexer catalog database
type Catalog struct {
	Path string `toml:"path"`
}

// Logging controls log output
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"` // used by the TUI, which owns stdout
}

// Config is the indexdeck configuration
type Config struct {
	Server  Server  `toml:"server"`
	Catalog Catalog `toml:"catalog"`
	Logging Logging `toml:"logging"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Server: Server{
			URL:            DefaultServerURL,
			RequestTimeout: DefaultRequestTimeout,
		},
		Catalog: Catalog{
			Path: filepath.Join(dataHome(), "indexdeck", "catalog.db"),
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dataHome(), "indexdeck", "indexdeck.log"),
		},
	}
}

// Path returns the config file path from INDEXDECK_CONFIG,
// falling back to $XDG_CONFIG_HOME/indexdeck/config.toml.
func Path() string {
	if env := os.Getenv("INDEXDECK_CONFIG"); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "indexdeck", "config.toml")
}

// Load reads the config file at path (Path() when empty), applies
// environment overrides and validates the result. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = Path()
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if env := os.Getenv("INDEXDECK_SERVER"); env != "" {
		c.Server.URL = env
	}
	if env := os.Getenv("INDEXDECK_TOKEN"); env != "" {
		c.Server.Token = env
	}
	if env := os.Getenv("INDEXDECK_CATALOG"); env != "" {
		c.Catalog.Path = env
	}
}

func (c *Config) normalize() error {
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	c.Server.Token = strings.TrimSpace(c.Server.Token)
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = DefaultRequestTimeout
	}

	catalog, err := ExpandPath(c.Catalog.Path)
	if err != nil {
		return err
	}
	c.Catalog.Path = catalog

	logFile, err := ExpandPath(c.Logging.File)
	if err != nil {
		return err
	}
	c.Logging.File = logFile
	return nil
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.url must be an absolute URL, got %q", c.Server.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url scheme must be http or https, got %q", u.Scheme)
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must be positive, got %d", c.Server.RequestTimeout)
	}
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path is required")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// Timeout returns the request timeout for calls to the server
func (s Server) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// ExpandPath expands a leading ~ and makes the path absolute
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if pathValue[1] == '/' {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return abs, nil
}

// WriteSample writes the default configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func dataHome() string {
	if env := os.Getenv("XDG_DATA_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}
