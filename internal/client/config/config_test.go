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

	assert.Equal(t, "", c.APIBaseURL)
	assert.Equal(t, "fieldsync.db", c.DatabasePath)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"cmd"}
	t.Cleanup(func() { os.Args = oldArgs })

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "fieldsync.db", cfg.DatabasePath)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"cmd", "-a", "http://erp.example.com/api", "-d", "/tmp/x.db", "-i", "10"}
	t.Cleanup(func() { os.Args = oldArgs })

	cfg := LoadConfig()

	assert.Equal(t, "http://erp.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/x.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
}
