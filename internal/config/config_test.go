package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/staff")
	t.Setenv("SERVER_PORT", "")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "postgres://localhost/staff", cfg.DatabaseURL)
}

func TestLoadDashboardConfig_Defaults(t *testing.T) {
	for _, key := range []string{"POLL_INTERVAL", "REQUEST_TIMEOUT", "OUTBOX_SIZE", "DEVICE_BASE_URL", "STORE_URL", "MQTT_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadDashboardConfig()

	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 256, cfg.OutboxSize)
	assert.Equal(t, "http://10.244.230.50", cfg.DeviceBaseURL)
	assert.Equal(t, "staffpad/activity", cfg.MQTTTopic)
}

func TestLoadDashboardConfig_RejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"POLL_INTERVAL":   "soon",
		"REQUEST_TIMEOUT": "-1s",
		"OUTBOX_SIZE":     "0",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadDashboardConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadDashboardConfig_Overrides(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "5s")
	t.Setenv("DEVICE_BASE_URL", "http://pad.local")

	cfg, err := LoadDashboardConfig()

	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "http://pad.local", cfg.DeviceBaseURL)
}
