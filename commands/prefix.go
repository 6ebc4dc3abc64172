package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/bot"
	"github.com/MaxOhn/shishabot/db"
)

const maxPrefixes = 5

var prefixPrefix = &bot.PrefixCommand{
	Name:  "prefix",
	Desc:  "Show, add, or remove server prefixes",
	Flags: bot.FlagAuthority | bot.FlagOnlyGuilds | bot.FlagSkipDefer,
	Exec: func(ctx context.Context, b *bot.Bot, msg *discordgo.MessageCreate, args bot.Args) error {
		stream := bot.NewStream(args.Rest)
		action := strings.ToLower(stream.NextWord())
		value := stream.NextWord()

		reply := func(content string) error {
			_, err := b.Session.ChannelMessageSend(msg.ChannelID, content)
			return err
		}

		switch action {
		case "":
			prefixes := b.Configs.GuildPrefixes(ctx, msg.GuildID)
			return reply(fmt.Sprintf("Prefixes for this server: `%s`", strings.Join(prefixes, "`, `")))
		case "add":
			if value == "" {
				return reply("Specify the prefix to add, e.g. `prefix add !`")
			}

			var denied string
			err := b.Configs.UpdateGuildConfig(ctx, msg.GuildID, func(cfg *db.GuildConfig) {
				for _, p := range cfg.Prefixes {
					if p == value {
						denied = fmt.Sprintf("`%s` already is a prefix for this server", value)
						return
					}
				}
				if len(cfg.Prefixes) >= maxPrefixes {
					denied = fmt.Sprintf("A server can have at most %d prefixes", maxPrefixes)
					return
				}
				cfg.Prefixes = append(cfg.Prefixes, value)
			})
			if err != nil {
				_ = reply("Failed to update the prefixes, blame my database")
				return err
			}
			if denied != "" {
				return reply(denied)
			}

			return reply(fmt.Sprintf("Added `%s` as a prefix for this server", value))
		case "remove":
			if value == "" {
				return reply("Specify the prefix to remove, e.g. `prefix remove !`")
			}

			var denied string
			err := b.Configs.UpdateGuildConfig(ctx, msg.GuildID, func(cfg *db.GuildConfig) {
				idx := -1
				for i, p := range cfg.Prefixes {
					if p == value {
						idx = i
						break
					}
				}
				if idx < 0 {
					denied = fmt.Sprintf("`%s` is not a prefix for this server", value)
					return
				}
				if len(cfg.Prefixes) == 1 {
					denied = "A server must keep at least one prefix"
					return
				}
				cfg.Prefixes = append(cfg.Prefixes[:idx], cfg.Prefixes[idx+1:]...)
			})
			if err != nil {
				_ = reply("Failed to update the prefixes, blame my database")
				return err
			}
			if denied != "" {
				return reply(denied)
			}

			return reply(fmt.Sprintf("Removed `%s` from the prefixes of this server", value))
		default:
			return reply("Expected `add` or `remove` as first argument")
		}
	},
}
