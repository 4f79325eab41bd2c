package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Log       LogConfig
	Assistant AssistantConfig
	Session   SessionConfig
	Seed      SeedConfig
}

type ServerConfig struct {
	Port     int
	APIToken string
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

type AssistantConfig struct {
	// StageDelay is how long each reply stage lasts.
	StageDelay time.Duration
	VoiceDelay time.Duration
}

type SessionConfig struct {
	LoginDelay  time.Duration
	GoogleDelay time.Duration
}

type SeedConfig struct {
	Enabled bool
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4100,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Assistant: AssistantConfig{
			StageDelay: time.Second,
			VoiceDelay: time.Second,
		},
		Session: SessionConfig{
			LoginDelay:  1500 * time.Millisecond,
			GoogleDelay: time.Second,
		},
		Seed: SeedConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from the YAML file at
// $XDG_CONFIG_HOME/syntra/config.yaml, then environment variables (SYNTRA_*),
// which override file values.
//
// The API token is not loaded here; see GetAPIToken.
func Load() (Config, error) {
	b, err := newFileBackend(configFilePath())
	if err != nil {
		return Config{}, err
	}
	return loadWith(b)
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Assistant.StageDelay <= 0 {
		return fmt.Errorf("assistant.stage_delay must be positive, got %s", c.Assistant.StageDelay)
	}
	if c.Assistant.VoiceDelay <= 0 {
		return fmt.Errorf("assistant.voice_delay must be positive, got %s", c.Assistant.VoiceDelay)
	}
	if c.Session.LoginDelay <= 0 {
		return fmt.Errorf("session.login_delay must be positive, got %s", c.Session.LoginDelay)
	}
	if c.Session.GoogleDelay <= 0 {
		return fmt.Errorf("session.google_delay must be positive, got %s", c.Session.GoogleDelay)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps log.level to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
