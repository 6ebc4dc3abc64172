package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MaxOhn/shishabot/db"
)

// ConfigStore is the persistence backend of the config cache.
type ConfigStore interface {
	GetUserConfig(ctx context.Context, userID string) (*db.UserConfig, error)
	InsertUserConfig(ctx context.Context, userID string, cfg *db.UserConfig) error
	UpsertGuildConfig(ctx context.Context, guildID string, cfg *db.GuildConfig) error
}

type guildEntry struct {
	mu     sync.Mutex
	cfg    *db.GuildConfig
	loaded bool
}

// Configs caches guild configs in memory with write-through persistence.
// Reads on a missing guild insert the default; updates only reach the
// cache after the persist succeeded.
type Configs struct {
	store ConfigStore

	mu     sync.Mutex
	guilds map[string]*guildEntry
}

func NewConfigs(store ConfigStore) *Configs {
	return &Configs{
		store:  store,
		guilds: make(map[string]*guildEntry),
	}
}

func (c *Configs) entry(guildID string) *guildEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.guilds[guildID]
	if !ok {
		e = &guildEntry{}
		c.guilds[guildID] = e
	}

	return e
}

// ReadGuildConfig invokes f on the cached config, loading the default
// first if the guild was never seen. A failed default insert is logged
// and the cache still populated so reads stay consistent.
func (c *Configs) ReadGuildConfig(ctx context.Context, guildID string, f func(*db.GuildConfig)) {
	e := c.entry(guildID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		cfg := db.DefaultGuildConfig()
		if err := c.store.UpsertGuildConfig(ctx, guildID, cfg); err != nil {
			slog.Warn(fmt.Sprintf("failed to insert guild %s", guildID), slog.Any("err", err))
		}
		e.cfg = cfg
		e.loaded = true
	}

	f(e.cfg)
}

// UpdateGuildConfig applies f to a copy of the config, persists it, and
// only then replaces the cached value. The cache is untouched on persist
// failure.
func (c *Configs) UpdateGuildConfig(ctx context.Context, guildID string, f func(*db.GuildConfig)) error {
	e := c.entry(guildID)

	e.mu.Lock()
	defer e.mu.Unlock()

	var cfg *db.GuildConfig
	if e.loaded {
		cfg = e.cfg.Clone()
	} else {
		cfg = db.DefaultGuildConfig()
	}

	f(cfg)

	if err := c.store.UpsertGuildConfig(ctx, guildID, cfg); err != nil {
		return fmt.Errorf("failed to upsert guild %s: %w", guildID, err)
	}

	e.cfg = cfg
	e.loaded = true

	return nil
}

// GuildConfig returns a copy of the guild's config.
func (c *Configs) GuildConfig(ctx context.Context, guildID string) *db.GuildConfig {
	var out *db.GuildConfig
	c.ReadGuildConfig(ctx, guildID, func(cfg *db.GuildConfig) { out = cfg.Clone() })
	return out
}

// GuildPrefixes returns the guild's prefixes.
func (c *Configs) GuildPrefixes(ctx context.Context, guildID string) []string {
	var out []string
	c.ReadGuildConfig(ctx, guildID, func(cfg *db.GuildConfig) {
		out = append(out, cfg.Prefixes...)
	})
	return out
}

// GuildPrefixesFind returns the first guild prefix the stream starts
// with, or "".
func (c *Configs) GuildPrefixesFind(ctx context.Context, guildID string, stream *Stream) string {
	var out string
	c.ReadGuildConfig(ctx, guildID, func(cfg *db.GuildConfig) {
		for _, p := range cfg.Prefixes {
			if stream.StartsWith(p) {
				out = p
				return
			}
		}
	})
	return out
}

// FirstPrefix returns the guild's primary prefix, or the default outside
// guilds.
func (c *Configs) FirstPrefix(ctx context.Context, guildID string) string {
	if guildID == "" {
		return db.DefaultPrefix
	}

	prefix := db.DefaultPrefix
	c.ReadGuildConfig(ctx, guildID, func(cfg *db.GuildConfig) {
		if len(cfg.Prefixes) > 0 {
			prefix = cfg.Prefixes[0]
		}
	})
	return prefix
}

// UserConfig returns the user's persisted config, inserting the default
// on first reference.
func (c *Configs) UserConfig(ctx context.Context, userID string) (*db.UserConfig, error) {
	cfg, err := c.store.GetUserConfig(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user config: %w", err)
	}
	if cfg != nil {
		return cfg, nil
	}

	cfg = &db.UserConfig{}
	if err := c.store.InsertUserConfig(ctx, userID, cfg); err != nil {
		return nil, fmt.Errorf("failed to insert user config: %w", err)
	}

	return cfg, nil
}
