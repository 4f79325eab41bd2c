package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kBool
	kDuration
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "SYNTRA_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.api_token", typ: kString, env: "SYNTRA_API_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Server.APIToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.APIToken },
	},
	{
		key: "storage.data_dir", typ: kString, env: "SYNTRA_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "log.level", typ: kString, env: "SYNTRA_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "assistant.stage_delay", typ: kDuration, env: "SYNTRA_ASSISTANT_STAGE_DELAY",
		apply:   func(cfg *Config, v any) { cfg.Assistant.StageDelay = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Assistant.StageDelay },
	},
	{
		key: "assistant.voice_delay", typ: kDuration, env: "SYNTRA_ASSISTANT_VOICE_DELAY",
		apply:   func(cfg *Config, v any) { cfg.Assistant.VoiceDelay = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Assistant.VoiceDelay },
	},
	{
		key: "session.login_delay", typ: kDuration, env: "SYNTRA_SESSION_LOGIN_DELAY",
		apply:   func(cfg *Config, v any) { cfg.Session.LoginDelay = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Session.LoginDelay },
	},
	{
		key: "session.google_delay", typ: kDuration, env: "SYNTRA_SESSION_GOOGLE_DELAY",
		apply:   func(cfg *Config, v any) { cfg.Session.GoogleDelay = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Session.GoogleDelay },
	},
	{
		key: "seed.enabled", typ: kBool, env: "SYNTRA_SEED_ENABLED",
		apply:   func(cfg *Config, v any) { cfg.Seed.Enabled = v.(bool) },
		extract: func(cfg Config) any { return cfg.Seed.Enabled },
	},
}

func lookupSpec(key string) (keySpec, bool) {
	for _, s := range specs {
		if s.key == key {
			return s, true
		}
	}
	return keySpec{}, false
}

// parseValue converts raw text to the Go type a key spec's apply expects.
func parseValue(s keySpec, raw string) (any, error) {
	switch s.typ {
	case kInt:
		return strconv.Atoi(raw)
	case kBool:
		return strconv.ParseBool(raw)
	case kDuration:
		return time.ParseDuration(raw)
	default:
		return raw, nil
	}
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		if s.typ == kInt {
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
			continue
		}

		raw, ok, err := b.GetString(s.key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.key, err)
		}
		if !ok || (raw == "" && s.typ != kString) {
			continue
		}
		v, err := parseValue(s, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not parse config key %s=%q: %v. Using default value.\n", s.key, raw, err)
			continue
		}
		s.apply(cfg, v)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		v, err := parseValue(s, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not parse env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			continue
		}
		s.apply(cfg, v)
	}
}

func toInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		if val > math.MaxInt {
			return 0, fmt.Errorf("value %d is out of range", val)
		}
		return int(val), nil
	case float64:
		if val < math.MinInt || val > math.MaxInt || val != math.Trunc(val) {
			return 0, fmt.Errorf("value %v is not a valid integer or is out of range", val)
		}
		return int(val), nil
	case string:
		return strconv.Atoi(val)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
