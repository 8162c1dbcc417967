// ABOUTME: Configuration for the todo server, clients, and storage backends.
// ABOUTME: Layers defaults, a JSON file in the XDG config dir, .env, and env vars.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harper/todo/internal/db"
	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)

type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `json:"db_path,omitempty"`

	// Backend selects the store: sqlite (default) or charm.
	Backend string `json:"backend,omitempty"`

	// Addr is the listen address for `todo serve`.
	Addr string `json:"addr,omitempty"`

	// APIURL is the GraphQL endpoint used by `todo tui`.
	APIURL string `json:"api_url,omitempty"`

	CORSOrigins []string `json:"cors_origins,omitempty"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`

	// CharmHost is the charm server used by the charm backend.
	CharmHost string `json:"charm_host,omitempty"`

	// AutoSync pushes charm writes to the server immediately.
	AutoSync bool `json:"auto_sync"`

	// StaleThreshold makes charm reads sync first when the last sync is
	// older than this. Zero disables it.
	StaleThreshold Duration `json:"stale_threshold,omitempty"`
}

// Duration is a time.Duration written as a string like "5m" in JSON.
// Plain numbers are read as seconds.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", data)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		DBPath:      db.DefaultPath(),
		Backend:     BackendSQLite,
		Addr:        ":3001",
		APIURL:      "http://localhost:3001/graphql",
		CORSOrigins: []string{"http://localhost:3000"},
		LogLevel:    "info",
		LogFormat:   "text",
		CharmHost:   "charm.2389.dev",
		AutoSync:    true,
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "todo")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load reads path (ConfigPath when empty), then .env, then the environment.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from disk, returns defaults if not found.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TODO_* environment variables. PORT is
// honoured when TODO_ADDR is unset.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TODO_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TODO_BACKEND"); v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("TODO_ADDR"); v != "" {
		c.Addr = v
	} else if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := os.Getenv("TODO_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("TODO_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("TODO_CHARM_HOST"); v != "" {
		c.CharmHost = v
	}
	if v := os.Getenv("TODO_AUTO_SYNC"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AutoSync = b
		}
	}
	if v := os.Getenv("TODO_STALE_THRESHOLD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.StaleThreshold = Duration(d)
		}
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendCharm:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSQLite, BackendCharm)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.Backend == BackendSQLite && c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.StaleThreshold < 0 {
		return fmt.Errorf("stale_threshold must not be negative")
	}
	return nil
}

// Save writes configuration to path (ConfigPath when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
