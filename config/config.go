// Package config loads environment variables into the typed BotConfig used
// across the service. Required credentials and paths fail loading with a
// named-variable error; the process exits non-zero on that path.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type BotConfig struct {
	Tokens Tokens
	Paths  Paths

	// Owners may run owner-only commands.
	Owners []uint64
	// DevGuild receives the slash command overwrite at startup.
	DevGuild uint64

	// MetricsAddr serves /metrics and /healthz. Optional.
	MetricsAddr string
}

type Tokens struct {
	Discord         string
	OsuClientID     uint64
	OsuClientSecret string
}

type Paths struct {
	// Folders holds the skin directories.
	Folders string
	// Maps holds downloaded .osu files.
	Maps string
	// ServerSettings holds per-guild danser settings files.
	ServerSettings string
}

// Load reads and validates the environment. All token, path, owner and
// guild variables are required.
func Load() (*BotConfig, error) {
	cfg := &BotConfig{}

	var err error
	if cfg.Tokens.Discord, err = envString("DISCORD_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.Tokens.OsuClientID, err = envUint64("OSU_CLIENT_ID"); err != nil {
		return nil, err
	}
	if cfg.Tokens.OsuClientSecret, err = envString("OSU_CLIENT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.Paths.Folders, err = envString("FOLDERS_PATH"); err != nil {
		return nil, err
	}
	if cfg.Paths.Maps, err = envString("MAP_PATH"); err != nil {
		return nil, err
	}
	if cfg.Paths.ServerSettings, err = envString("SERVER_SETTINGS_PATH"); err != nil {
		return nil, err
	}
	if cfg.Owners, err = envIDList("OWNERS_USER_ID"); err != nil {
		return nil, err
	}
	if cfg.DevGuild, err = envUint64("DEV_GUILD_ID"); err != nil {
		return nil, err
	}

	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = ":2112"
	}

	return cfg, nil
}

// IsOwner reports whether the given snowflake (decimal string) is a
// configured bot owner.
func (c *BotConfig) IsOwner(userID string) bool {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return false
	}
	for _, owner := range c.Owners {
		if owner == id {
			return true
		}
	}
	return false
}

func envString(name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", fmt.Errorf("missing env variable `%s`", name)
	}
	return value, nil
}

func envUint64(name string) (uint64, error) {
	value, err := envString(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse env variable `%s=%s`; expected u64", name, value)
	}
	return n, nil
}

func envIDList(name string) ([]uint64, error) {
	value, err := envString(name)
	if err != nil {
		return nil, err
	}
	ids, err := ParseIDList(value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env variable `%s=%s`; expected list of ids like [1,2,3]", name, value)
	}
	return ids, nil
}

// ParseIDList parses a `[id,id,...]` list of u64 snowflakes. Whitespace
// around ids inside the brackets is tolerated.
func ParseIDList(s string) ([]uint64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("expected surrounding brackets in %q", s)
	}

	inner := s[1 : len(s)-1]
	if strings.TrimSpace(inner) == "" {
		return []uint64{}, nil
	}

	parts := strings.Split(inner, ",")
	ids := make([]uint64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
