package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "Json", c.DataDir)
	assert.Equal(t, 100, c.NotificationCap)
	assert.Equal(t, 72*time.Hour, c.BookingLeadTime)
	assert.Equal(t, 72*time.Hour, c.CancellationWindow)
	assert.Equal(t, "admin@admin.com", c.AdminEmail)
	assert.Equal(t, "admin123", c.AdminPassword)
	assert.Equal(t, "₱", c.CurrencySymbol)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_NoArgsGivesDefaults(t *testing.T) {
	c, err := LoadConfig(nil)
	require.NoError(t, err)
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, t.TempDir(), "cfg.json", map[string]any{
		"data_dir":         "/from/json",
		"notification_cap": 10,
	})

	c, err := LoadConfig([]string{"-c", path, "-d", "/from/flag"})
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", c.DataDir)
	assert.Equal(t, 10, c.NotificationCap)
}

func TestLoadConfig_MissingFileFails(t *testing.T) {
	_, err := LoadConfig([]string{"-config", "/definitely/not/here.json"})
	require.Error(t, err)
}
