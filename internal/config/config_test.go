package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port '8080', got '%s'", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.SnapshotPath != "./data/sessions.json" {
		t.Errorf("Expected default snapshot path, got '%s'", cfg.SnapshotPath)
	}
	if cfg.SnapshotPollInterval != 5*time.Minute {
		t.Errorf("Expected default poll interval 5m, got %v", cfg.SnapshotPollInterval)
	}
	if cfg.SuggestionLimit != 3 {
		t.Errorf("Expected default suggestion limit 3, got %d", cfg.SuggestionLimit)
	}
	if cfg.ShutdownTimeout != GracefulShutdown {
		t.Errorf("Expected default shutdown timeout %v, got %v", GracefulShutdown, cfg.ShutdownTimeout)
	}
	if cfg.MetricsUsername != "prometheus" {
		t.Errorf("Expected default metrics username 'prometheus', got '%s'", cfg.MetricsUsername)
	}
	if cfg.SentrySampleRate != 1.0 {
		t.Errorf("Expected default sentry sample rate 1.0, got %v", cfg.SentrySampleRate)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSnapshotPath, "/tmp/sessions.json")
	t.Setenv(EnvSnapshotPollInterval, "30s")
	t.Setenv(EnvSuggestionLimit, "5")
	t.Setenv(EnvMetricsPassword, "secret")
	t.Setenv(EnvBetterStackToken, "bs-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %s, want 9999", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.SnapshotPath != "/tmp/sessions.json" {
		t.Errorf("SnapshotPath = %s, want /tmp/sessions.json", cfg.SnapshotPath)
	}
	if cfg.SnapshotPollInterval != 30*time.Second {
		t.Errorf("SnapshotPollInterval = %v, want 30s", cfg.SnapshotPollInterval)
	}
	if cfg.SuggestionLimit != 5 {
		t.Errorf("SuggestionLimit = %d, want 5", cfg.SuggestionLimit)
	}
	if cfg.MetricsPassword != "secret" {
		t.Errorf("MetricsPassword = %s, want secret", cfg.MetricsPassword)
	}
	if cfg.BetterStackToken != "bs-token" {
		t.Errorf("BetterStackToken = %s, want bs-token", cfg.BetterStackToken)
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv(EnvSnapshotPollInterval, "not-a-duration")
	t.Setenv(EnvSuggestionLimit, "not-a-number")
	t.Setenv(EnvSentrySampleRate, "nope")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.SnapshotPollInterval != 5*time.Minute {
		t.Errorf("malformed duration should fall back to default, got %v", cfg.SnapshotPollInterval)
	}
	if cfg.SuggestionLimit != 3 {
		t.Errorf("malformed int should fall back to default, got %d", cfg.SuggestionLimit)
	}
	if cfg.SentrySampleRate != 1.0 {
		t.Errorf("malformed float should fall back to default, got %v", cfg.SentrySampleRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "empty port",
			mutate:      func(c *Config) { c.Port = "" },
			wantErr:     true,
			errContains: EnvPort,
		},
		{
			name:        "empty snapshot path",
			mutate:      func(c *Config) { c.SnapshotPath = "" },
			wantErr:     true,
			errContains: EnvSnapshotPath,
		},
		{
			name:        "negative poll interval",
			mutate:      func(c *Config) { c.SnapshotPollInterval = -time.Second },
			wantErr:     true,
			errContains: EnvSnapshotPollInterval,
		},
		{
			name:        "zero suggestion limit",
			mutate:      func(c *Config) { c.SuggestionLimit = 0 },
			wantErr:     true,
			errContains: EnvSuggestionLimit,
		},
		{
			name:        "sample rate above one",
			mutate:      func(c *Config) { c.SentrySampleRate = 1.5 },
			wantErr:     true,
			errContains: EnvSentrySampleRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:                 "8080",
				LogLevel:             "info",
				ShutdownTimeout:      GracefulShutdown,
				SnapshotPath:         "./data/sessions.json",
				SnapshotPollInterval: 5 * time.Minute,
				SuggestionLimit:      3,
				SentrySampleRate:     1.0,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Validate() error %q does not mention %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
