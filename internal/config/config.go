package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	BackendURL      string `yaml:"backend_url"`
	Theme           string `yaml:"theme"`
	LogLevel        string `yaml:"log_level"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	RequestTimeoutS int    `yaml:"request_timeout_seconds"`
}

const (
	defaultBackendURL     = "http://127.0.0.1:5000"
	defaultCacheTTL       = 15
	defaultRequestTimeout = 120
)

// Load loads configuration from config file and environment variables
// Environment variables take precedence over config file values
func Load() (*Config, error) {
	cfg := &Config{
		BackendURL:      defaultBackendURL,
		CacheTTLMinutes: defaultCacheTTL,
		RequestTimeoutS: defaultRequestTimeout,
	}

	// Load from config file first
	if err := cfg.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Environment variables override config file
	cfg.loadFromEnv()

	if cfg.BackendURL == "" {
		cfg.BackendURL = defaultBackendURL
	}
	if cfg.CacheTTLMinutes <= 0 {
		cfg.CacheTTLMinutes = defaultCacheTTL
	}
	if cfg.RequestTimeoutS <= 0 {
		cfg.RequestTimeoutS = defaultRequestTimeout
	}

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	configPath := getConfigPath()
	if configPath == "" {
		return os.ErrNotExist
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if url := os.Getenv("SPINFILTER_BACKEND_URL"); url != "" {
		c.BackendURL = url
	}
	if level := os.Getenv("SPINFILTER_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if ttl := os.Getenv("SPINFILTER_CACHE_TTL_MINUTES"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil {
			c.CacheTTLMinutes = n
		}
	}
}

// getConfigPath returns the path to the config file
// Priority: $SPINFILTER_CONFIG > ~/.config/spinfilter/config.yaml
func getConfigPath() string {
	if configPath := os.Getenv("SPINFILTER_CONFIG"); configPath != "" {
		return configPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "spinfilter", "config.yaml")
}

func GetConfigDir() (string, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return "", fmt.Errorf("cannot determine config path")
	}
	return filepath.Dir(configPath), nil
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return configDir, nil
}

// SaveExampleConfig creates an example config file
func SaveExampleConfig() error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil // Already exists, don't overwrite
	}

	example := `# SpinFilter Configuration

# Base URL of the SpinFilter analysis backend
backend_url: "http://127.0.0.1:5000"

# Optional: Color theme (default, paper, midnight)
theme: "default"

# Optional: Log level for the session log file (debug, info, warn, error)
log_level: "info"

# Optional: How long drama scores and similar-article lookups are reused
# within a session (default: 15)
cache_ttl_minutes: 15

# Optional: Per-request timeout in seconds (default: 120; transcribing
# long audio is slow)
request_timeout_seconds: 120
`

	return os.WriteFile(configPath, []byte(example), 0600)
}

func (c *Config) Save() error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	// Load existing config so hand-edited fields are preserved
	existing := &Config{
		BackendURL:      defaultBackendURL,
		CacheTTLMinutes: defaultCacheTTL,
		RequestTimeoutS: defaultRequestTimeout,
	}
	if data, err := os.ReadFile(configPath); err == nil {
		yaml.Unmarshal(data, existing)
	}

	existing.BackendURL = c.BackendURL
	existing.Theme = c.Theme
	existing.LogLevel = c.LogLevel
	existing.CacheTTLMinutes = c.CacheTTLMinutes
	existing.RequestTimeoutS = c.RequestTimeoutS

	data, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# SpinFilter Configuration\n\n")
	return os.WriteFile(configPath, append(header, data...), 0600)
}
