package db

// DefaultPrefix is the prefix accepted in DMs and seeded into new guild
// configs.
const DefaultPrefix = "<"

// AuthorityKind distinguishes role and user authority entries.
type AuthorityKind string

const (
	AuthorityRole AuthorityKind = "role"
	AuthorityUser AuthorityKind = "user"
)

// Authority designates a role or user permitted to run authority-flagged
// commands in a guild.
type Authority struct {
	Kind AuthorityKind `json:"kind"`
	ID   string        `json:"id"`
}

// GuildConfig is the per-guild configuration. Prefixes is never empty.
type GuildConfig struct {
	Prefixes    []string    `json:"prefixes"`
	TrackLimit  uint8       `json:"track_limit"`
	WithLyrics  bool        `json:"with_lyrics"`
	ShowRetries bool        `json:"show_retries"`
	Authorities []Authority `json:"authorities"`
}

// DefaultGuildConfig returns the config seeded on first reference.
func DefaultGuildConfig() *GuildConfig {
	return &GuildConfig{
		Prefixes:    []string{DefaultPrefix},
		TrackLimit:  50,
		WithLyrics:  true,
		ShowRetries: true,
	}
}

// Clone returns a deep copy so cached configs can be mutated copy-on-write.
func (c *GuildConfig) Clone() *GuildConfig {
	out := *c
	out.Prefixes = append([]string(nil), c.Prefixes...)
	out.Authorities = append([]Authority(nil), c.Authorities...)
	return &out
}

// UserConfig is an opaque per-user option bag.
type UserConfig struct {
	ShowRetries *bool   `json:"show_retries,omitempty"`
	Skin        *string `json:"skin,omitempty"`
}
