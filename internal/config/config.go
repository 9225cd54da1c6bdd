package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/openmined/pdfdesk/internal/utils"
)

var (
	home, _           = os.UserHomeDir()
	DefaultStateDir   = filepath.Join(home, ".pdfdesk")
	DefaultConfigPath = filepath.Join(DefaultStateDir, "config.json")
	DefaultServerURL  = "http://localhost:8000"
	DefaultLogLevel   = "info"
)

const (
	stateDBName = "state.db"
	logFileName = "pdfdesk.log"
)

var (
	ErrNoServerURL = errors.New("config: server url missing")
	ErrNoStateDir  = errors.New("config: state dir missing")
	ErrLogLevel    = errors.New("config: unknown log level")
)

type Config struct {
	ServerURL string `json:"server_url"`
	StateDir  string `json:"state_dir"`
	LogLevel  string `json:"log_level,omitempty"`
	Path      string `json:"-"`
}

func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return ErrNoServerURL
	}

	if err := utils.ValidateURL(c.ServerURL); err != nil {
		return fmt.Errorf("server url: %w", err)
	}

	if c.StateDir == "" {
		return ErrNoStateDir
	}

	stateDir, err := utils.ResolvePath(c.StateDir)
	if err != nil {
		return fmt.Errorf("state dir: %w", err)
	}
	c.StateDir = stateDir

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w %q", ErrLogLevel, c.LogLevel)
	}

	return nil
}

// StateDBPath is where the durable client key/value state lives.
func (c *Config) StateDBPath() string {
	return filepath.Join(c.StateDir, stateDBName)
}

func (c *Config) LogFilePath() string {
	return filepath.Join(c.StateDir, "logs", logFileName)
}

func (c *Config) Save() error {
	if c.Path == "" {
		c.Path = DefaultConfigPath
	}

	if err := utils.EnsureParent(c.Path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.Path, data, 0o644)
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config parse '%s': %w", path, err)
	}

	cfg.Path = path
	return &cfg, nil
}
