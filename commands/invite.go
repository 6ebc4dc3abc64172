package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/bot"
	"github.com/MaxOhn/shishabot/db"
)

var inviteSlash = &bot.SlashCommand{
	Name:  "invite",
	Flags: bot.FlagSkipDefer,
	Create: func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "invite",
			Description: "Invite me to your server",
		}
	},
	Exec: func(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand) error {
		return cmd.Callback(&discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{inviteEmbed(b)},
		})
	},
}

var invitePrefix = &bot.PrefixCommand{
	Name:    "invite",
	Aliases: []string{"inv"},
	Desc:    "Invite me to your server",
	Flags:   bot.FlagSkipDefer,
	Exec: func(ctx context.Context, b *bot.Bot, msg *discordgo.MessageCreate, args bot.Args) error {
		_, err := b.Session.ChannelMessageSendEmbed(msg.ChannelID, inviteEmbed(b))
		return err
	},
}

func inviteEmbed(b *bot.Bot) *discordgo.MessageEmbed {
	link := fmt.Sprintf(
		"https://discord.com/api/oauth2/authorize?client_id=%s&permissions=309238025280&scope=bot%%20applications.commands",
		b.Session.State.User.ID,
	)

	return &discordgo.MessageEmbed{
		Title:       "Invite me to your server!",
		Description: link,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "The initial prefix will be " + db.DefaultPrefix,
		},
	}
}
