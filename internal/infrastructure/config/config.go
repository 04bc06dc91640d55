package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	InvenTree  InvenTreeConfig
	Digikey    DigikeyConfig
	Mouser     MouserConfig
	Log        LogConfig
	ImageCache ImageCacheConfig
	HTTP       HTTPConfig
}

// InvenTreeConfig holds inventory backend connection settings
type InvenTreeConfig struct {
	ServerURL string
	Token     string
}

// DigikeyConfig holds Digikey API credentials
type DigikeyConfig struct {
	ClientID     string
	ClientSecret string
	StoragePath  string // directory for the OAuth token cache
	Sandbox      bool
}

// MouserConfig holds Mouser API credentials
type MouserConfig struct {
	APIKey string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// ImageCacheConfig holds image download cache settings
type ImageCacheConfig struct {
	Dir string
}

// HTTPConfig holds shared HTTP client settings
type HTTPConfig struct {
	Timeout time.Duration
}

// envBindings maps config keys to the environment variables that set them.
// The variable names are a compatibility contract and must not change.
var envBindings = map[string]string{
	"inventree.server_url":  "INVENTREE_SERVER_URL",
	"inventree.token":       "INVENTREE_TOKEN",
	"digikey.client_id":     "DIGIKEY_CLIENT_ID",
	"digikey.client_secret": "DIGIKEY_CLIENT_SECRET",
	"digikey.storage_path":  "DIGIKEY_STORAGE_PATH",
	"digikey.sandbox":       "DIGIKEY_CLIENT_SANDBOX",
	"mouser.api_key":        "MOUSER_PART_API_KEY",
	"log.level":             "PARTSYNC_LOG_LEVEL",
	"log.format":            "PARTSYNC_LOG_FORMAT",
	"log.output":            "PARTSYNC_LOG_OUTPUT",
	"image_cache.dir":       "PARTSYNC_IMAGE_CACHE",
	"http.timeout":          "PARTSYNC_HTTP_TIMEOUT",
}

// Load loads configuration from .env, an optional TOML file, and environment
// variables.
// Priority (highest to lowest):
// 1. Environment variables (exact names, see envBindings)
// 2. config.toml in . or $HOME/.partsync
// 3. Built-in defaults
//
// Load does not cross-validate the result; commands that need a complete
// configuration call Validate before touching the network.
func Load() (*Config, error) {
	// Populate the process environment from a local .env first.
	// A missing file is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".partsync"))
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// Build config struct
	cfg := &Config{
		InvenTree: InvenTreeConfig{
			ServerURL: v.GetString("inventree.server_url"),
			Token:     v.GetString("inventree.token"),
		},
		Digikey: DigikeyConfig{
			ClientID:     v.GetString("digikey.client_id"),
			ClientSecret: v.GetString("digikey.client_secret"),
			StoragePath:  v.GetString("digikey.storage_path"),
			Sandbox:      v.GetBool("digikey.sandbox"),
		},
		Mouser: MouserConfig{
			APIKey: v.GetString("mouser.api_key"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		ImageCache: ImageCacheConfig{
			Dir: v.GetString("image_cache.dir"),
		},
		HTTP: HTTPConfig{
			Timeout: v.GetDuration("http.timeout"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	cfg.InvenTree.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.InvenTree.ServerURL), "/")

	if cfg.Digikey.StoragePath == "" {
		cfg.Digikey.StoragePath = filepath.Join("~", ".partsync", "digikey")
	}
	cfg.Digikey.StoragePath = expandHome(cfg.Digikey.StoragePath)

	if cfg.ImageCache.Dir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cfg.ImageCache.Dir = filepath.Join(dir, "partsync", "images")
		} else {
			cfg.ImageCache.Dir = filepath.Join(os.TempDir(), "partsync-images")
		}
	}
	cfg.ImageCache.Dir = expandHome(cfg.ImageCache.Dir)

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = 30 * time.Second
	}
}

// Validate checks that the configuration is complete enough to run a sync.
// The inventory backend is always required, plus at least one supplier.
func (c *Config) Validate() error {
	if c.InvenTree.ServerURL == "" || c.InvenTree.Token == "" {
		return fmt.Errorf("InvenTree configuration is required: set INVENTREE_SERVER_URL and INVENTREE_TOKEN")
	}
	if c.Digikey.ClientID != "" && c.Digikey.ClientSecret == "" {
		return fmt.Errorf("incomplete Digikey configuration: DIGIKEY_CLIENT_ID is set but DIGIKEY_CLIENT_SECRET is not")
	}
	if c.Digikey.ClientSecret != "" && c.Digikey.ClientID == "" {
		return fmt.Errorf("incomplete Digikey configuration: DIGIKEY_CLIENT_SECRET is set but DIGIKEY_CLIENT_ID is not")
	}
	if !c.DigikeyEnabled() && !c.MouserEnabled() {
		return fmt.Errorf("at least one supplier must be configured: set DIGIKEY_CLIENT_ID/DIGIKEY_CLIENT_SECRET or MOUSER_PART_API_KEY")
	}
	return nil
}

// DigikeyEnabled reports whether Digikey credentials are configured
func (c *Config) DigikeyEnabled() bool {
	return c.Digikey.ClientID != "" && c.Digikey.ClientSecret != ""
}

// MouserEnabled reports whether a Mouser API key is configured
func (c *Config) MouserEnabled() bool {
	return c.Mouser.APIKey != ""
}

// InvenTreeConfigured reports whether the inventory backend is configured
func (c *Config) InvenTreeConfigured() bool {
	return c.InvenTree.ServerURL != "" && c.InvenTree.Token != ""
}

// expandHome expands a leading ~ to the user home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
