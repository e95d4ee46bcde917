package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const Version = "v0.3.0"

// EnvPrefix namespaces environment overrides, e.g. GENSTUDIO_SESSION_BACKEND.
const EnvPrefix = "GENSTUDIO"

type SessionConfig struct {
	Backend   string `mapstructure:"backend"` // file, redis or memory
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
}

type IdentityConfig struct {
	Backend     string        `mapstructure:"backend"` // mock or postgres
	DatabaseURL string        `mapstructure:"database_url"`
	Latency     time.Duration `mapstructure:"latency"`
}

type Config struct {
	DataDir       string         `mapstructure:"data_dir"`
	LogLevel      string         `mapstructure:"log_level"`
	LogFormat     string         `mapstructure:"log_format"`
	Workspace     string         `mapstructure:"workspace"`
	TemplatesFile string         `mapstructure:"templates_file"`
	Session       SessionConfig  `mapstructure:"session"`
	Identity      IdentityConfig `mapstructure:"identity"`
}

var defaults = map[string]interface{}{
	"data_dir":              "~/.genstudio",
	"log_level":             "info",
	"log_format":            "console",
	"workspace":             "",
	"templates_file":        "",
	"session.backend":       "file",
	"session.redis_addr":    "localhost:6379",
	"session.redis_db":      0,
	"identity.backend":      "mock",
	"identity.database_url": "",
	"identity.latency":      "800ms",
}

// Keys lists the settings accepted by Set.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var configPath string

// Path is the config file LoadConfig read or will write.
func Path() string { return configPath }

// LoadConfig reads path, or ~/.genstudio.yaml when path is empty, into a
// fresh viper state. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".genstudio.yaml")
	}
	configPath = path

	viper.Reset()
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.DataDir = expandHome(config.DataDir)
	config.Workspace = expandHome(config.Workspace)
	config.TemplatesFile = expandHome(config.TemplatesFile)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects unknown backends.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("session.backend: unknown backend %q", c.Session.Backend)
	}
	switch c.Identity.Backend {
	case "mock", "postgres":
	default:
		return fmt.Errorf("identity.backend: unknown backend %q", c.Identity.Backend)
	}
	if c.Identity.Backend == "postgres" && c.Identity.DatabaseURL == "" {
		return errors.New("identity.database_url is required for the postgres backend")
	}
	if c.Identity.Latency < 0 {
		return errors.New("identity.latency must not be negative")
	}
	return nil
}

// SaveConfig sets a known key and writes the config file.
func SaveConfig(key string, value interface{}) error {
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	viper.Set(key, value)
	return Write()
}

func Write() error {
	if configPath == "" {
		return errors.New("config not loaded")
	}
	return viper.WriteConfigAs(configPath)
}

func GetString(key string) string {
	return viper.GetString(key)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
