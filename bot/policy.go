package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/db"
	"github.com/MaxOhn/shishabot/ratelimit"
)

// ProcessResult is the terminal outcome of a command invocation.
type ProcessResult uint8

const (
	ProcessSuccess ProcessResult = iota
	ProcessNoDM
	ProcessNoSendPermission
	ProcessRatelimited
	ProcessNoOwner
	ProcessNoAuthority
)

func (r ProcessResult) String() string {
	switch r {
	case ProcessSuccess:
		return "Success"
	case ProcessNoDM:
		return "NoDM"
	case ProcessNoSendPermission:
		return "NoSendPermission"
	case ProcessRatelimited:
		return "Ratelimited"
	case ProcessNoOwner:
		return "NoOwner"
	case ProcessNoAuthority:
		return "NoAuthority"
	default:
		return "Unknown"
	}
}

// invocation is the policy-relevant slice of an incoming command.
type invocation struct {
	userID      string
	guildID     string
	channelID   string
	memberPerms int64
	memberRoles []string
	// prefix marks a message invocation; only those count against the
	// global bucket, slash commands are paced by Discord already.
	prefix bool
}

// checkPolicy runs the pre-dispatch checks in order: guild-only,
// owner-only, global bucket (prefix invocations only), command bucket,
// authority. It returns ProcessSuccess to proceed, otherwise the
// terminal result and the user-visible message; the global bucket
// rejects silently.
func (b *Bot) checkPolicy(ctx context.Context, flags CommandFlags, bucket ratelimit.BucketName, inv invocation) (ProcessResult, string) {
	if (flags.OnlyGuilds() || flags.Authority()) && inv.guildID == "" {
		return ProcessNoDM, "That command is only available in servers"
	}

	if flags.OnlyOwner() && !b.Cfg.IsOwner(inv.userID) {
		return ProcessNoOwner, "That command can only be used by the bot owner"
	}

	if inv.prefix {
		if cooldown := b.Buckets.Get(ratelimit.All).Take(inv.userID); cooldown > 0 {
			slog.Debug(fmt.Sprintf("Ratelimiting user %s for %d seconds", inv.userID, cooldown))
			return ProcessRatelimited, ""
		}
	}

	if bucket != "" {
		if cooldown := b.Buckets.Get(bucket).Take(inv.userID); cooldown > 0 {
			slog.Debug(fmt.Sprintf("Ratelimiting user %s on bucket `%s` for %d seconds", inv.userID, bucket, cooldown))
			return ProcessRatelimited, fmt.Sprintf("Command on cooldown, try again in %d seconds", cooldown)
		}
	}

	if flags.Authority() {
		if reason := b.checkAuthority(ctx, inv); reason != "" {
			return ProcessNoAuthority, reason
		}
	}

	return ProcessSuccess, ""
}

// checkAuthority reports why the invoker may not run an authority
// command, or "" when they may: admins, the guild owner, and members
// matching a configured authority all pass.
func (b *Bot) checkAuthority(ctx context.Context, inv invocation) string {
	if inv.memberPerms&discordgo.PermissionAdministrator != 0 {
		return ""
	}

	if b.Session != nil && b.Session.State != nil {
		if guild, err := b.Session.State.Guild(inv.guildID); err == nil && guild.OwnerID == inv.userID {
			return ""
		}
	}

	var authorities []db.Authority
	b.Configs.ReadGuildConfig(ctx, inv.guildID, func(cfg *db.GuildConfig) {
		authorities = append(authorities, cfg.Authorities...)
	})

	for _, auth := range authorities {
		switch auth.Kind {
		case db.AuthorityUser:
			if auth.ID == inv.userID {
				return ""
			}
		case db.AuthorityRole:
			for _, role := range inv.memberRoles {
				if role == auth.ID {
					return ""
				}
			}
		}
	}

	var roles []string
	for _, auth := range authorities {
		if auth.Kind == db.AuthorityRole {
			roles = append(roles, fmt.Sprintf("<@&%s>", auth.ID))
		}
	}

	if len(roles) == 0 {
		return "You need admin permission to use this command"
	}

	return fmt.Sprintf(
		"You need admin permission or any of these roles to use this command: %s",
		strings.Join(roles, ", "),
	)
}
