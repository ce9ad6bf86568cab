package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBackendURL is the development backend used when none is configured
const DefaultBackendURL = "http://localhost:8001"

// Config holds all application configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BackendConfig holds the movie backend proxy settings
type BackendConfig struct {
	URL               string        `mapstructure:"url"` // base URL; the API lives under /api
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	DetailCacheTTL    time.Duration `mapstructure:"detail_cache_ttl"` // negative disables
}

// StorageConfig holds local persistence settings
type StorageConfig struct {
	Path string `mapstructure:"path"` // bbolt file; empty keeps favorites in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	StatusDuration time.Duration `mapstructure:"status_duration"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:               DefaultBackendURL,
			Timeout:           15 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
			DetailCacheTTL:    10 * time.Minute,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "cinex.db"),
		},
		UI: UIConfig{
			StatusDuration: 3 * time.Second,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "cinex.log"),
			Level: "INFO",
		},
	}
}

// API returns the root of the backend API
func (b BackendConfig) API() string {
	base := strings.TrimRight(strings.TrimSpace(b.URL), "/")
	if base == "" {
		base = DefaultBackendURL
	}
	return base + "/api"
}

// defaultDataPath returns the data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "cinex")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinex")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinex")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinex")
	}
}

// newViper builds a viper instance seeded with defaults and env bindings.
// Environment variables use the CINEX_ prefix with dots mapped to
// underscores, e.g. CINEX_BACKEND_URL.
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CINEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about
	v.SetDefault("backend.url", cfg.Backend.URL)
	v.SetDefault("backend.timeout", cfg.Backend.Timeout)
	v.SetDefault("backend.requests_per_second", cfg.Backend.RequestsPerSecond)
	v.SetDefault("backend.burst", cfg.Backend.Burst)
	v.SetDefault("backend.detail_cache_ttl", cfg.Backend.DetailCacheTTL)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("ui.status_duration", cfg.UI.StatusDuration)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	return v
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return loadConfig("", defaultConfigPath(), ".")
}

// LoadConfigFile loads configuration from an explicit file and environment
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(file string, searchPaths ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if file != "" {
		v.SetConfigFile(file)
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to the default config file
func SaveConfig(cfg *Config) error {
	return SaveConfigFile(cfg, filepath.Join(defaultConfigPath(), "config.yaml"))
}

// SaveConfigFile writes cfg to path as YAML
func SaveConfigFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("backend.url", cfg.Backend.URL)
	v.Set("backend.timeout", cfg.Backend.Timeout.String())
	v.Set("backend.requests_per_second", cfg.Backend.RequestsPerSecond)
	v.Set("backend.burst", cfg.Backend.Burst)
	v.Set("backend.detail_cache_ttl", cfg.Backend.DetailCacheTTL.String())
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("ui.status_duration", cfg.UI.StatusDuration.String())
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
