package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/bot"
	"github.com/MaxOhn/shishabot/db"
)

var serverConfigSlash = &bot.SlashCommand{
	Name:  "serverconfig",
	Flags: bot.FlagAuthority | bot.FlagOnlyGuilds | bot.FlagSkipDefer,
	Create: func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "serverconfig",
			Description: "Adjust configurations for a server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "track_limit",
					Description: "Adjust the default track limit for osu! top scores",
					MinValue:    &trackLimitMin,
					MaxValue:    100,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "with_lyrics",
					Description: "Choose whether song commands should show lyrics",
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "show_retries",
					Description: "Choose whether recent score commands show the retry count",
				},
			},
		}
	},
	Exec: func(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand) error {
		trackLimit := cmd.IntOption("track_limit")
		withLyrics := boolOption(cmd, "with_lyrics")
		showRetries := boolOption(cmd, "show_retries")

		if trackLimit != nil || withLyrics != nil || showRetries != nil {
			err := b.Configs.UpdateGuildConfig(ctx, cmd.GuildID(), func(cfg *db.GuildConfig) {
				if trackLimit != nil {
					cfg.TrackLimit = uint8(*trackLimit)
				}
				if withLyrics != nil {
					cfg.WithLyrics = *withLyrics
				}
				if showRetries != nil {
					cfg.ShowRetries = *showRetries
				}
			})
			if err != nil {
				_ = cmd.Error("Failed to update the server config, blame my database")
				return err
			}
		}

		cfg := b.Configs.GuildConfig(ctx, cmd.GuildID())

		return cmd.Callback(&discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{serverConfigEmbed(cfg)},
		})
	},
}

var trackLimitMin = float64(1)

func boolOption(cmd *bot.InteractionCommand, name string) *bool {
	opt := cmd.Option(name)
	if opt == nil {
		return nil
	}
	v := opt.BoolValue()
	return &v
}

func serverConfigEmbed(cfg *db.GuildConfig) *discordgo.MessageEmbed {
	onOff := func(b bool) string {
		if b {
			return "Enabled"
		}
		return "Disabled"
	}

	authorities := "None"
	if len(cfg.Authorities) > 0 {
		var mentions []string
		for _, auth := range cfg.Authorities {
			if auth.Kind == db.AuthorityRole {
				mentions = append(mentions, fmt.Sprintf("<@&%s>", auth.ID))
			} else {
				mentions = append(mentions, fmt.Sprintf("<@%s>", auth.ID))
			}
		}
		authorities = strings.Join(mentions, ", ")
	}

	return &discordgo.MessageEmbed{
		Title: "Server config",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prefixes", Value: "`" + strings.Join(cfg.Prefixes, "`, `") + "`", Inline: true},
			{Name: "Authorities", Value: authorities, Inline: true},
			{Name: "Track limit", Value: fmt.Sprintf("%d", cfg.TrackLimit), Inline: true},
			{Name: "Lyrics", Value: onOff(cfg.WithLyrics), Inline: true},
			{Name: "Retries", Value: onOff(cfg.ShowRetries), Inline: true},
		},
	}
}
