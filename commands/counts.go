package commands

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/bot"
	"github.com/MaxOhn/shishabot/pagination"
)

var commandsSlash = &bot.SlashCommand{
	Name:  "commands",
	Flags: bot.FlagSkipDefer,
	Create: func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "commands",
			Description: "Display a list of popular commands",
		}
	},
	Exec: func(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand) error {
		return b.PaginateInteraction(cmd, commandCountsConfig(b, cmd.UserID()))
	},
}

var commandsPrefix = &bot.PrefixCommand{
	Name:  "commands",
	Desc:  "List of popular commands",
	Flags: bot.FlagSkipDefer,
	Exec: func(ctx context.Context, b *bot.Bot, msg *discordgo.MessageCreate, args bot.Args) error {
		return b.PaginateMessage(msg.ChannelID, commandCountsConfig(b, msg.Author.ID))
	},
}

func commandCountsConfig(b *bot.Bot, author string) pagination.Config {
	counts := b.Counter.Snapshot()

	return pagination.Config{
		Author: author,
		Pages:  pagination.NewPages(pagination.CommandCountsPerPage, len(counts)),
		Kind:   pagination.KindDefault,
		Builder: &pagination.CommandCounts{
			BootTime: b.BootTime,
			Counts:   counts,
		},
	}
}
