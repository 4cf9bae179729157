package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadAppConfigFromEnv(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "data/uploads", cfg.UploadDir)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "whisperx", cfg.WhisperXBin)
}

func TestLoadAppConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("WORKER_POLL_INTERVAL", "500ms")
	t.Setenv("UPLOAD_DIR", "/var/lib/scribeq/uploads")

	cfg, err := LoadAppConfigFromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "/var/lib/scribeq/uploads", cfg.UploadDir)
}

func TestLoadAppConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative poll interval", key: "WORKER_POLL_INTERVAL", value: "-2s"},
		{name: "excessive poll interval", key: "WORKER_POLL_INTERVAL", value: "10m"},
		{name: "empty upload dir", key: "UPLOAD_DIR", value: "  "},
		{name: "negative shutdown timeout", key: "SHUTDOWN_TIMEOUT", value: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadAppConfigFromEnv(context.Background())
			assert.Error(t, err)
		})
	}
}
