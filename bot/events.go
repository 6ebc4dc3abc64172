package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/db"
	"github.com/MaxOhn/shishabot/pagination"
	"github.com/MaxOhn/shishabot/telemetry"
)

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	telemetry.CountEvent("ready")
	slog.Info("Session is ready", slog.String("user", r.User.Username))
}

func (b *Bot) handleResumed(s *discordgo.Session, r *discordgo.Resumed) {
	telemetry.CountEvent("resumed")
	slog.Info("Session resumed")
}

func (b *Bot) handleDisconnect(s *discordgo.Session, d *discordgo.Disconnect) {
	telemetry.CountEvent("disconnect")
	slog.Warn("Gateway connection closed")
}

func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	telemetry.CountEvent("guild_create")
	slog.Debug("guild available", slog.String("guild_id", g.ID), slog.String("name", g.Name))
}

// logCommand writes the `[guild:channel] user invoked ...` line, with
// placeholders for state the cache does not have.
func (b *Bot) logCommand(guildID, channelID, username, name string) {
	if username == "" {
		username = "<unknown user>"
	}

	location := "Private"
	if guildID != "" {
		guildName := "<uncached guild>"
		if guild, err := b.Session.State.Guild(guildID); err == nil {
			guildName = guild.Name
		}

		channelName := "<uncached channel>"
		if channel, err := b.Session.State.Channel(channelID); err == nil && channel.Name != "" {
			channelName = channel.Name
		}

		location = guildName + ":" + channelName
	}

	slog.Info(fmt.Sprintf("[%s] %s invoked `%s`", location, username, name))
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	telemetry.CountEvent("message_create")

	if m.Author == nil || m.Author.Bot || m.WebhookID != "" {
		return
	}

	ctx := b.ctx

	stream := NewStream(m.Content)
	stream.TakeWhileWhitespace()

	if m.GuildID != "" {
		prefix := b.Configs.GuildPrefixesFind(ctx, m.GuildID, stream)
		if prefix == "" {
			return
		}
		stream.Advance(len(prefix))
	} else if stream.StartsWith(db.DefaultPrefix) {
		// DMs accept the default prefix but don't require one.
		stream.Advance(len(db.DefaultPrefix))
	}

	cmd, num := parseInvoke(stream, b.Registry)
	if cmd == nil {
		return
	}

	name := cmd.Name
	b.logCommand(m.GuildID, m.ChannelID, m.Author.Username, name)

	result, err := b.processPrefixCommand(ctx, cmd, m, Args{Rest: stream.Rest(), Num: num})
	switch {
	case err != nil:
		slog.Error(fmt.Sprintf("failed to process prefix command `%s`", name), slog.Any("err", err))
		telemetry.CountCommand("prefix", name, "error")
	case result == ProcessSuccess:
		slog.Info(fmt.Sprintf("Processed command `%s`", name))
		telemetry.CountCommand("prefix", name, result.String())
		b.Counter.Inc(name)
	default:
		slog.Info(fmt.Sprintf("Command `%s` was not processed: %s", name, result))
		telemetry.CountCommand("prefix", name, result.String())
	}
}

func (b *Bot) processPrefixCommand(ctx context.Context, cmd *PrefixCommand, m *discordgo.MessageCreate, args Args) (ProcessResult, error) {
	inv := invocation{
		userID:    m.Author.ID,
		guildID:   m.GuildID,
		channelID: m.ChannelID,
		prefix:    true,
	}
	if m.Member != nil {
		inv.memberRoles = m.Member.Roles
	}

	if m.GuildID != "" {
		perms, err := b.Session.State.UserChannelPermissions(b.Session.State.User.ID, m.ChannelID)
		if err == nil && perms&discordgo.PermissionSendMessages == 0 {
			return ProcessNoSendPermission, nil
		}

		if memberPerms, err := b.Session.State.UserChannelPermissions(m.Author.ID, m.ChannelID); err == nil {
			inv.memberPerms = memberPerms
		}
	}

	result, content := b.checkPolicy(ctx, cmd.Flags, cmd.Bucket, inv)
	if result != ProcessSuccess {
		if content != "" {
			b.errorReply(m.ChannelID, content)
		}
		return result, nil
	}

	if cmd.Flags.Defer() {
		_ = b.Session.ChannelTyping(m.ChannelID)
	}

	if err := cmd.Exec(ctx, b, m, args); err != nil {
		return ProcessSuccess, err
	}

	return ProcessSuccess, nil
}

func (b *Bot) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	telemetry.CountEvent("interaction_create")

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleSlashCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	case discordgo.InteractionMessageComponent:
		b.Paginations.HandleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		name := i.ModalSubmitData().CustomID
		if name == pagination.ModalPageID {
			b.Paginations.HandleModal(s, i)
		} else {
			slog.Error(fmt.Sprintf("unknown modal `%s`", name))
		}
	}
}

func (b *Bot) handleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cmd := newInteractionCommand(s, i)
	name := cmd.Data.Name

	username := ""
	if user := cmd.User(); user != nil {
		username = user.Username
	}
	b.logCommand(i.GuildID, i.ChannelID, username, name)

	slash := b.Registry.Slash(name)
	if slash == nil {
		slog.Error(fmt.Sprintf("unknown slash command `%s`", name))
		return
	}

	result, err := b.processSlashCommand(b.ctx, slash, cmd)
	switch {
	case err != nil:
		slog.Error(fmt.Sprintf("failed to process slash command `%s`", name), slog.Any("err", err))
		telemetry.CountCommand("slash", name, "error")
	case result == ProcessSuccess:
		slog.Info(fmt.Sprintf("Processed slash command `%s`", name))
		telemetry.CountCommand("slash", name, result.String())
		b.Counter.Inc(name)
	default:
		slog.Info(fmt.Sprintf("Command `/%s` was not processed: %s", name, result))
		telemetry.CountCommand("slash", name, result.String())
	}
}

func (b *Bot) processSlashCommand(ctx context.Context, slash *SlashCommand, cmd *InteractionCommand) (ProcessResult, error) {
	inv := invocation{
		userID:    cmd.UserID(),
		guildID:   cmd.GuildID(),
		channelID: cmd.ChannelID(),
	}
	if cmd.Interaction.Member != nil {
		inv.memberPerms = cmd.Interaction.Member.Permissions
		inv.memberRoles = cmd.Interaction.Member.Roles
	}

	result, content := b.checkPolicy(ctx, slash.Flags, slash.Bucket, inv)
	if result != ProcessSuccess {
		if content != "" {
			if err := cmd.Error(content); err != nil {
				return result, err
			}
		}
		return result, nil
	}

	cmd.ephemeral = slash.Flags.Ephemeral()

	if slash.Flags.Defer() {
		if err := cmd.Defer(cmd.ephemeral); err != nil {
			return ProcessSuccess, err
		}
	}

	if err := slash.Exec(ctx, b, cmd); err != nil {
		return ProcessSuccess, err
	}

	return ProcessSuccess, nil
}

func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name

	slash := b.Registry.Slash(name)
	if slash == nil || slash.Autocomplete == nil {
		return
	}

	if err := slash.Autocomplete(b.ctx, b, i); err != nil {
		slog.Error(fmt.Sprintf("failed to process autocomplete for `%s`", name), slog.Any("err", err))
	}
}

// errorReply posts a red error embed to a channel, best-effort.
func (b *Bot) errorReply(channelID, content string) {
	_, err := b.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Description: content,
			Color:       0xE74C3C,
		}},
	})
	if err != nil {
		slog.Warn("failed to send error reply", slog.Any("err", err))
	}
}
