package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/ratelimit"
)

// CommandFlags are per-command policy switches.
type CommandFlags uint8

const (
	// FlagAuthority restricts the command to guild authorities.
	FlagAuthority CommandFlags = 1 << iota
	// FlagEphemeral makes slash responses visible only to the invoker.
	FlagEphemeral
	// FlagOnlyGuilds rejects invocations outside guilds.
	FlagOnlyGuilds
	// FlagOnlyOwner restricts the command to configured bot owners.
	FlagOnlyOwner
	// FlagSkipDefer suppresses the deferred ack / typing indicator.
	FlagSkipDefer
)

func (f CommandFlags) Authority() bool  { return f&FlagAuthority != 0 }
func (f CommandFlags) Ephemeral() bool  { return f&FlagEphemeral != 0 }
func (f CommandFlags) OnlyGuilds() bool { return f&FlagOnlyGuilds != 0 }
func (f CommandFlags) OnlyOwner() bool  { return f&FlagOnlyOwner != 0 }
func (f CommandFlags) Defer() bool      { return f&FlagSkipDefer == 0 }

// SlashCommand describes an application command.
type SlashCommand struct {
	Name   string
	Flags  CommandFlags
	Bucket ratelimit.BucketName

	// Create builds the command definition registered with Discord.
	Create func() *discordgo.ApplicationCommand
	Exec   func(ctx context.Context, b *Bot, cmd *InteractionCommand) error
	// Autocomplete handles autocomplete interactions; optional.
	Autocomplete func(ctx context.Context, b *Bot, i *discordgo.InteractionCreate) error
}

// PrefixCommand describes a chat-message command.
type PrefixCommand struct {
	Name    string
	Aliases []string
	Desc    string
	Flags   CommandFlags
	Bucket  ratelimit.BucketName

	Exec func(ctx context.Context, b *Bot, msg *discordgo.MessageCreate, args Args) error
}

// Registry indexes slash commands by name with prefix-range enumeration
// for autocomplete, and prefix commands by name or alias.
type Registry struct {
	slash      map[string]*SlashCommand
	slashNames []string

	prefix     map[string]*PrefixCommand
	prefixCmds []*PrefixCommand
}

// NewRegistry builds the index. Duplicate names are a programming error
// and panic.
func NewRegistry(slash []*SlashCommand, prefix []*PrefixCommand) *Registry {
	r := &Registry{
		slash:  make(map[string]*SlashCommand, len(slash)),
		prefix: make(map[string]*PrefixCommand),
	}

	for _, cmd := range slash {
		if _, ok := r.slash[cmd.Name]; ok {
			panic(fmt.Sprintf("duplicate slash command `%s`", cmd.Name))
		}
		r.slash[cmd.Name] = cmd
		r.slashNames = append(r.slashNames, cmd.Name)
	}
	sort.Strings(r.slashNames)

	for _, cmd := range prefix {
		for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
			if _, ok := r.prefix[name]; ok {
				panic(fmt.Sprintf("duplicate prefix command `%s`", name))
			}
			r.prefix[name] = cmd
		}
		r.prefixCmds = append(r.prefixCmds, cmd)
	}
	sort.Slice(r.prefixCmds, func(i, j int) bool { return r.prefixCmds[i].Name < r.prefixCmds[j].Name })

	return r
}

// Slash returns the slash command with the given name, or nil.
func (r *Registry) Slash(name string) *SlashCommand {
	return r.slash[name]
}

// Prefix returns the prefix command with the given name or alias, or nil.
func (r *Registry) Prefix(name string) *PrefixCommand {
	return r.prefix[name]
}

// Names returns all slash command names in sorted order.
func (r *Registry) Names() []string {
	return r.slashNames
}

// Descendants returns the slash command names starting with prefix, for
// autocomplete suggestions.
func (r *Registry) Descendants(prefix string) []string {
	start := sort.SearchStrings(r.slashNames, prefix)

	var names []string
	for _, name := range r.slashNames[start:] {
		if !strings.HasPrefix(name, prefix) {
			break
		}
		names = append(names, name)
	}

	return names
}

// PrefixCommands returns the distinct prefix commands sorted by name.
func (r *Registry) PrefixCommands() []*PrefixCommand {
	return r.prefixCmds
}

// Collect builds the definitions of all slash commands for registration.
func (r *Registry) Collect() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(r.slashNames))
	for _, name := range r.slashNames {
		defs = append(defs, r.slash[name].Create())
	}
	return defs
}
