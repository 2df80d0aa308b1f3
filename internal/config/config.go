package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Artwork ArtworkConfig `mapstructure:"artwork"`
	Player  PlayerConfig  `mapstructure:"player"`
	Search  SearchConfig  `mapstructure:"search"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds discovery backend configuration
type ServerConfig struct {
	URL string `mapstructure:"url"` // Backend base URL, e.g. http://localhost:8000
}

// ArtworkConfig holds artwork resolution settings
type ArtworkConfig struct {
	CacheDir          string  `mapstructure:"cache_dir"`           // Empty = memory-only cache
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // Third-party lookup rate
	BurstLimit        int     `mapstructure:"burst_limit"`
}

// PlayerConfig holds audio preview player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // Player binary, empty for auto-detect
	Args    []string `mapstructure:"args"`    // Additional player arguments
}

// SearchConfig holds autocomplete and pagination settings
type SearchConfig struct {
	DebounceMillis  int `mapstructure:"debounce_millis"`  // Autocomplete quiet window
	MinQueryLength  int `mapstructure:"min_query_length"` // Shorter queries are ignored
	PageSize        int `mapstructure:"page_size"`        // Trending page size
	ScrollThreshold int `mapstructure:"scroll_threshold"` // Rows from bottom that trigger the next page
}

// UIConfig holds UI configuration
type UIConfig struct {
	CompactCards bool `mapstructure:"compact_cards"` // Short 60-rune descriptions
	HideHeader   bool `mapstructure:"hide_header"`   // Collapse the header while scrolling down
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8000",
		},
		Artwork: ArtworkConfig{
			CacheDir:          defaultCachePath(),
			RequestsPerSecond: 2,
			BurstLimit:        4,
		},
		Player: PlayerConfig{
			Command: "",
		},
		Search: SearchConfig{
			DebounceMillis:  300,
			MinQueryLength:  3,
			PageSize:        12,
			ScrollThreshold: 6,
		},
		UI: UIConfig{
			CompactCards: false,
			HideHeader:   false,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "discover", "discover.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "discover", "discover.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "discover")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "discover")
	}
}

// defaultCachePath returns the default artwork cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "discover", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "discover", "cache")
	}
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("DISCOVER")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the current configuration to the config directory
func Save(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("server.url", cfg.Server.URL)
	viper.Set("artwork.cache_dir", cfg.Artwork.CacheDir)
	viper.Set("artwork.requests_per_second", cfg.Artwork.RequestsPerSecond)
	viper.Set("artwork.burst_limit", cfg.Artwork.BurstLimit)
	viper.Set("player.command", cfg.Player.Command)
	viper.Set("player.args", cfg.Player.Args)
	viper.Set("search.debounce_millis", cfg.Search.DebounceMillis)
	viper.Set("search.min_query_length", cfg.Search.MinQueryLength)
	viper.Set("search.page_size", cfg.Search.PageSize)
	viper.Set("search.scroll_threshold", cfg.Search.ScrollThreshold)
	viper.Set("ui.compact_cards", cfg.UI.CompactCards)
	viper.Set("ui.hide_header", cfg.UI.HideHeader)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearCache removes all cached artwork data
func ClearCache(cfg *Config) error {
	if cfg.Artwork.CacheDir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Artwork.CacheDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
