// Package config loads and persists xiyandate configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/XGenerationLab/XiYan-DateResolver/internal/dateparse"
	"github.com/XGenerationLab/XiYan-DateResolver/libdate"
)

// Configuration keys.
const (
	KeyTimezone         = "timezone"
	KeyWorkers          = "workers"
	KeyOutput           = "output"
	KeyHeader           = "header"
	KeyLogLevel         = "log_level"
	KeyLastCompleteWeek = "last_complete_week"
	KeyServerAddr       = "server.addr"
	KeyShutdownTimeout  = "server.shutdown_timeout"
)

// EnvPrefix prefixes environment overrides, e.g. XIYANDATE_SERVER_ADDR.
const EnvPrefix = "XIYANDATE"

// Config represents the application configuration
type Config struct {
	Timezone         string       `mapstructure:"timezone" json:"timezone"`
	Workers          int          `mapstructure:"workers" json:"workers"`
	Output           string       `mapstructure:"output" json:"output"`
	Header           bool         `mapstructure:"header" json:"header"`
	LogLevel         string       `mapstructure:"log_level" json:"log_level"`
	LastCompleteWeek bool         `mapstructure:"last_complete_week" json:"last_complete_week"`
	Server           ServerConfig `mapstructure:"server" json:"server"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" json:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	return dateparse.Location(c.Timezone)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return pkgerrors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Output != "text" && c.Output != "json" {
		return pkgerrors.Errorf("output must be text or json, got %q", c.Output)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return pkgerrors.Wrap(err, "invalid log_level")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Server.ShutdownTimeout <= 0 {
		return pkgerrors.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

// Manager handles configuration loading and persistence
type Manager struct {
	v          *viper.Viper
	configPath string
}

// DefaultPath returns ~/.xiyandate/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(homeDir, ".xiyandate", "config.yaml"), nil
}

// NewManager creates a configuration manager for the file at path. An empty
// path selects DefaultPath.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return &Manager{v: v, configPath: path}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTimezone, "Local")
	v.SetDefault(KeyWorkers, libdate.DefaultWorkers)
	v.SetDefault(KeyOutput, "text")
	v.SetDefault(KeyHeader, false)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLastCompleteWeek, false)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)
}

// Path returns the configuration file path.
func (m *Manager) Path() string {
	return m.configPath
}

// Viper exposes the underlying registry so callers can bind command-line flags.
func (m *Manager) Viper() *viper.Viper {
	return m.v
}

// Load reads the configuration file, if any, and applies environment
// overrides and bound flags on top of the defaults.
func (m *Manager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, pkgerrors.Wrapf(err, "failed to read config %s", m.configPath)
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save merges values into the configuration file and writes it back. Only
// the file's own settings are persisted, never defaults or overrides.
func (m *Manager) Save(values map[string]any) error {
	file := viper.New()
	file.SetConfigFile(m.configPath)
	file.SetConfigPermissions(0600)
	if err := file.ReadInConfig(); err != nil && !isNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to read config %s", m.configPath)
	}
	for k, val := range values {
		file.Set(k, val)
	}

	// The merged result must still load.
	check := viper.New()
	setDefaults(check)
	if err := check.MergeConfigMap(file.AllSettings()); err != nil {
		return pkgerrors.Wrap(err, "failed to merge config")
	}
	var cfg Config
	if err := check.Unmarshal(&cfg); err != nil {
		return pkgerrors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return pkgerrors.Wrap(err, "failed to create config directory")
	}
	if err := file.WriteConfigAs(m.configPath); err != nil {
		return pkgerrors.Wrap(err, "failed to write config")
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}
