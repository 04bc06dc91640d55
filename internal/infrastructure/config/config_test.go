package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"INVENTREE_SERVER_URL":   os.Getenv("INVENTREE_SERVER_URL"),
		"INVENTREE_TOKEN":        os.Getenv("INVENTREE_TOKEN"),
		"DIGIKEY_CLIENT_ID":      os.Getenv("DIGIKEY_CLIENT_ID"),
		"DIGIKEY_CLIENT_SECRET":  os.Getenv("DIGIKEY_CLIENT_SECRET"),
		"DIGIKEY_CLIENT_SANDBOX": os.Getenv("DIGIKEY_CLIENT_SANDBOX"),
		"DIGIKEY_STORAGE_PATH":   os.Getenv("DIGIKEY_STORAGE_PATH"),
		"MOUSER_PART_API_KEY":    os.Getenv("MOUSER_PART_API_KEY"),
		"PARTSYNC_LOG_LEVEL":     os.Getenv("PARTSYNC_LOG_LEVEL"),
		"PARTSYNC_LOG_FORMAT":    os.Getenv("PARTSYNC_LOG_FORMAT"),
		"PARTSYNC_LOG_OUTPUT":    os.Getenv("PARTSYNC_LOG_OUTPUT"),
		"PARTSYNC_IMAGE_CACHE":   os.Getenv("PARTSYNC_IMAGE_CACHE"),
		"PARTSYNC_HTTP_TIMEOUT":  os.Getenv("PARTSYNC_HTTP_TIMEOUT"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "", cfg.InvenTree.ServerURL)
		assert.Equal(t, "", cfg.InvenTree.Token)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "stderr", cfg.Log.Output)
		assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
		assert.NotEmpty(t, cfg.Digikey.StoragePath)
		assert.NotEmpty(t, cfg.ImageCache.Dir)
		assert.False(t, cfg.Digikey.Sandbox)
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVENTREE_SERVER_URL", "https://inventree.example.com")
		os.Setenv("INVENTREE_TOKEN", "inv-token-123")
		os.Setenv("DIGIKEY_CLIENT_ID", "dk-client")
		os.Setenv("DIGIKEY_CLIENT_SECRET", "dk-secret")
		os.Setenv("DIGIKEY_CLIENT_SANDBOX", "true")
		os.Setenv("DIGIKEY_STORAGE_PATH", "/tmp/dk-tokens")
		os.Setenv("MOUSER_PART_API_KEY", "mouser-key")
		os.Setenv("PARTSYNC_LOG_LEVEL", "debug")
		os.Setenv("PARTSYNC_LOG_FORMAT", "json")
		os.Setenv("PARTSYNC_HTTP_TIMEOUT", "10s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://inventree.example.com", cfg.InvenTree.ServerURL)
		assert.Equal(t, "inv-token-123", cfg.InvenTree.Token)
		assert.Equal(t, "dk-client", cfg.Digikey.ClientID)
		assert.Equal(t, "dk-secret", cfg.Digikey.ClientSecret)
		assert.True(t, cfg.Digikey.Sandbox)
		assert.Equal(t, "/tmp/dk-tokens", cfg.Digikey.StoragePath)
		assert.Equal(t, "mouser-key", cfg.Mouser.APIKey)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	})

	t.Run("trims trailing slash from server URL", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVENTREE_SERVER_URL", "https://inventree.example.com/")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://inventree.example.com", cfg.InvenTree.ServerURL)
	})

	t.Run("load succeeds with incomplete configuration", func(t *testing.T) {
		clearEnv()

		// The config command displays incomplete configurations, so Load
		// must not reject them; Validate does that for sync commands.
		cfg, err := Load()
		require.NoError(t, err)
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "complete with digikey",
			cfg: Config{
				InvenTree: InvenTreeConfig{ServerURL: "https://inv.local", Token: "t"},
				Digikey:   DigikeyConfig{ClientID: "id", ClientSecret: "secret"},
			},
		},
		{
			name: "complete with mouser",
			cfg: Config{
				InvenTree: InvenTreeConfig{ServerURL: "https://inv.local", Token: "t"},
				Mouser:    MouserConfig{APIKey: "key"},
			},
		},
		{
			name: "complete with both suppliers",
			cfg: Config{
				InvenTree: InvenTreeConfig{ServerURL: "https://inv.local", Token: "t"},
				Digikey:   DigikeyConfig{ClientID: "id", ClientSecret: "secret"},
				Mouser:    MouserConfig{APIKey: "key"},
			},
		},
		{
			name: "missing inventree",
			cfg: Config{
				Mouser: MouserConfig{APIKey: "key"},
			},
			wantErr: "INVENTREE_SERVER_URL",
		},
		{
			name: "missing inventree token",
			cfg: Config{
				InvenTree: InvenTreeConfig{ServerURL: "https://inv.local"},
				Mouser:    MouserConfig{APIKey: "key"},
			},
			wantErr: "INVENTREE_TOKEN",
		},
		{
			name: "no suppliers",
			cfg: Config{
				InvenTree: InvenTreeConfig{ServerURL: "https://inv.local", Token: "t"},
			},
			wantErr: "at least one supplier",
		},
		{
			name: "digikey id without secret",
			cfg: Config{
				InvenTree: InvenTreeConfig{ServerURL: "https://inv.local", Token: "t"},
				Digikey:   DigikeyConfig{ClientID: "id"},
			},
			wantErr: "DIGIKEY_CLIENT_SECRET",
		},
		{
			name: "digikey secret without id",
			cfg: Config{
				InvenTree: InvenTreeConfig{ServerURL: "https://inv.local", Token: "t"},
				Digikey:   DigikeyConfig{ClientSecret: "secret"},
			},
			wantErr: "DIGIKEY_CLIENT_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_SupplierHelpers(t *testing.T) {
	cfg := Config{
		Digikey: DigikeyConfig{ClientID: "id", ClientSecret: "secret"},
	}
	assert.True(t, cfg.DigikeyEnabled())
	assert.False(t, cfg.MouserEnabled())
	assert.False(t, cfg.InvenTreeConfigured())

	cfg.Mouser.APIKey = "key"
	assert.True(t, cfg.MouserEnabled())

	cfg.Digikey.ClientSecret = ""
	assert.False(t, cfg.DigikeyEnabled())

	cfg.InvenTree = InvenTreeConfig{ServerURL: "https://inv.local", Token: "t"}
	assert.True(t, cfg.InvenTreeConfigured())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare tilde", "~", home},
		{"tilde prefix", filepath.Join("~", "x", "y"), filepath.Join(home, "x", "y")},
		{"absolute path untouched", "/tmp/tokens", "/tmp/tokens"},
		{"relative path untouched", "tokens", "tokens"},
		{"tilde inside path untouched", "/tmp/~x", "/tmp/~x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandHome(tt.input))
		})
	}
}
