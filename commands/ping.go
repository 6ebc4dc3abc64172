package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/bot"
)

var pingSlash = &bot.SlashCommand{
	Name:  "ping",
	Flags: bot.FlagSkipDefer,
	Create: func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "ping",
			Description: "Check if the bot is online",
		}
	},
	Exec: func(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand) error {
		return cmd.Callback(&discordgo.InteractionResponseData{
			Content: pingContent(b),
		})
	},
}

var pingPrefix = &bot.PrefixCommand{
	Name:  "ping",
	Desc:  "Check if the bot is online",
	Flags: bot.FlagSkipDefer,
	Exec: func(ctx context.Context, b *bot.Bot, msg *discordgo.MessageCreate, args bot.Args) error {
		_, err := b.Session.ChannelMessageSend(msg.ChannelID, pingContent(b))
		return err
	},
}

func pingContent(b *bot.Bot) string {
	return fmt.Sprintf(":ping_pong: Pong! (%dms)", b.Session.HeartbeatLatency().Milliseconds())
}
