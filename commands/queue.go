package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/bot"
)

var queueSlash = &bot.SlashCommand{
	Name:  "queue",
	Flags: bot.FlagSkipDefer,
	Create: func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "queue",
			Description: "Display the replay render queue",
		}
	},
	Exec: func(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand) error {
		return cmd.Callback(&discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{queueEmbed(b)},
		})
	},
}

var queuePrefix = &bot.PrefixCommand{
	Name:  "queue",
	Desc:  "Display the replay render queue",
	Flags: bot.FlagSkipDefer,
	Exec: func(ctx context.Context, b *bot.Bot, msg *discordgo.MessageCreate, args bot.Args) error {
		_, err := b.Session.ChannelMessageSendEmbed(msg.ChannelID, queueEmbed(b))
		return err
	},
}

func queueEmbed(b *bot.Bot) *discordgo.MessageEmbed {
	jobs := b.Replays.Snapshot()

	if len(jobs) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Replay queue",
			Description: "The queue is currently empty",
		}
	}

	var sb strings.Builder
	for i, job := range jobs {
		fmt.Fprintf(&sb, "`%d.` <@%s>: `%s` - %s\n", i+1, job.User, job.Name(), job.Status.String())
	}

	return &discordgo.MessageEmbed{
		Title:       "Replay queue",
		Description: sb.String(),
	}
}
