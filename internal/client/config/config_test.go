package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerURL)
	assert.Equal(t, "portal.db", c.ProfilePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"portalctl", "whoami"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8000", cfg.ServerURL)
	assert.Equal(t, "portal.db", cfg.ProfilePath)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"server_url":   "http://json:8000",
		"profile_path": "json.db",
	})
	os.Args = []string{"portalctl", "-c", path, "-p", "flag.db", "login"}

	cfg := LoadConfig()
	assert.Equal(t, "http://json:8000", cfg.ServerURL)
	assert.Equal(t, "flag.db", cfg.ProfilePath)
}
