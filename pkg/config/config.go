package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// ServerURL is the base address of the remote workspace service
	ServerURL string `yaml:"server_url"`

	// DefaultModel is sent with queries when no --model flag is given
	DefaultModel string `yaml:"default_model"`

	// UseLLM controls whether queries invoke the language model by default
	UseLLM bool `yaml:"use_llm"`

	// ShareExpiryDays is the default lifetime of new sharing links
	ShareExpiryDays int `yaml:"share_expiry_days"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`
	TableWidth int    `yaml:"table_width"`

	// DownloadDir is where asset downloads land; empty means the
	// current directory
	DownloadDir string `yaml:"download_dir"`

	// WatchDebounceMS debounces directory-watch uploads
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:       "http://localhost:8000",
		DefaultModel:    "gemini-pro",
		UseLLM:          true,
		ShareExpiryDays: 7,
		ColorTheme:      "auto",
		TableWidth:      0,
		DownloadDir:     "",
		WatchDebounceMS: 500,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file is not an error; defaults apply
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8000"
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "gemini-pro"
	}
	if cfg.ShareExpiryDays <= 0 {
		cfg.ShareExpiryDays = 7
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}

	return cfg, nil
}

// Save writes the config to the specified path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultPath returns the config file location, following XDG on Unix and
// AppData on Windows
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "kitctl", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "kitctl", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "kitctl", "config.yaml"), nil
}
