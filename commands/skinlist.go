package commands

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/bot"
	"github.com/MaxOhn/shishabot/pagination"
)

var skinListSlash = &bot.SlashCommand{
	Name:  "skinlist",
	Flags: bot.FlagSkipDefer,
	Create: func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "skinlist",
			Description: "Display all available skins",
		}
	},
	Exec: func(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand) error {
		cfg, err := skinListConfig(b, cmd.UserID())
		if err != nil {
			_ = cmd.Error("Failed to list the skins")
			return err
		}

		return b.PaginateInteraction(cmd, cfg)
	},
}

var skinListPrefix = &bot.PrefixCommand{
	Name:    "skinlist",
	Aliases: []string{"skins"},
	Desc:    "Display all available skins",
	Flags:   bot.FlagSkipDefer,
	Exec: func(ctx context.Context, b *bot.Bot, msg *discordgo.MessageCreate, args bot.Args) error {
		cfg, err := skinListConfig(b, msg.Author.ID)
		if err != nil {
			return err
		}

		return b.PaginateMessage(msg.ChannelID, cfg)
	},
}

func skinListConfig(b *bot.Bot, author string) (pagination.Config, error) {
	skins, err := listSkins(b)
	if err != nil {
		return pagination.Config{}, err
	}

	return pagination.Config{
		Author:  author,
		Pages:   pagination.NewPages(pagination.SkinListPerPage, len(skins)),
		Kind:    pagination.KindDefault,
		Builder: &pagination.SkinList{Skins: skins},
	}, nil
}
