package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type AppConfig struct {
	Port            string        `env:"PORT,default=8000"`
	UploadDir       string        `env:"UPLOAD_DIR,default=data/uploads"`
	PollInterval    time.Duration `env:"WORKER_POLL_INTERVAL,default=2s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	WhisperXBin     string        `env:"WHISPERX_BIN,default=whisperx"`
}

// to help with testing
var envProcess = envconfig.Process

func LoadAppConfigFromEnv(ctx context.Context) (*AppConfig, error) {
	var cfg AppConfig
	if err := envProcess(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := validateAppConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validateAppConfig(cfg *AppConfig) error {
	var errors []string

	if strings.TrimSpace(cfg.UploadDir) == "" {
		errors = append(errors, "UPLOAD_DIR is required")
	}

	if cfg.PollInterval <= 0 {
		errors = append(errors, "WORKER_POLL_INTERVAL must be positive")
	}

	if cfg.PollInterval > 5*time.Minute {
		errors = append(errors, "WORKER_POLL_INTERVAL must not exceed 5 minutes")
	}

	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, "SHUTDOWN_TIMEOUT must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
