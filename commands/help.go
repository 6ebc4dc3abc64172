package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/bot"
)

var helpSlash = &bot.SlashCommand{
	Name:  "help",
	Flags: bot.FlagSkipDefer | bot.FlagEphemeral,
	Create: func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "help",
			Description: "Display general help or help for a specific command",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "command",
				Description:  "Specify a command name",
				Autocomplete: true,
			}},
		}
	},
	Exec: func(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand) error {
		if name := cmd.StringOption("command"); name != "" {
			return cmd.Callback(&discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{commandHelpEmbed(b, name)},
			})
		}

		return cmd.Callback(&discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{generalHelpEmbed(ctx, b, cmd.GuildID())},
		})
	},
	Autocomplete: func(ctx context.Context, b *bot.Bot, i *discordgo.InteractionCreate) error {
		var value string
		for _, opt := range i.ApplicationCommandData().Options {
			if opt.Name == "command" && opt.Focused {
				value, _ = opt.Value.(string)
			}
		}

		var choices []*discordgo.ApplicationCommandOptionChoice
		if value != "" {
			for _, name := range b.Registry.Descendants(strings.ToLower(value)) {
				choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
					Name:  name,
					Value: name,
				})
				if len(choices) == 25 {
					break
				}
			}
		}

		return b.Session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionApplicationCommandAutocompleteResult,
			Data: &discordgo.InteractionResponseData{Choices: choices},
		})
	},
}

var helpPrefix = &bot.PrefixCommand{
	Name:    "help",
	Aliases: []string{"h"},
	Desc:    "Display general help",
	Flags:   bot.FlagSkipDefer,
	Exec: func(ctx context.Context, b *bot.Bot, msg *discordgo.MessageCreate, args bot.Args) error {
		_, err := b.Session.ChannelMessageSendEmbed(msg.ChannelID, generalHelpEmbed(ctx, b, msg.GuildID))
		return err
	},
}

func generalHelpEmbed(ctx context.Context, b *bot.Bot, guildID string) *discordgo.MessageEmbed {
	prefix := b.Configs.FirstPrefix(ctx, guildID)

	var sb strings.Builder
	for _, cmd := range b.Registry.PrefixCommands() {
		fmt.Fprintf(&sb, "`%s%s`", prefix, cmd.Name)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(&sb, " (`%s`)", strings.Join(cmd.Aliases, "`, `"))
		}
		if cmd.Desc != "" {
			sb.WriteString(": " + cmd.Desc)
		}
		sb.WriteByte('\n')
	}

	return &discordgo.MessageEmbed{
		Title:       "Available commands",
		Description: sb.String(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Prefix: %s (none required in DMs)", prefix),
		},
	}
}

func commandHelpEmbed(b *bot.Bot, name string) *discordgo.MessageEmbed {
	if cmd := b.Registry.Prefix(strings.ToLower(name)); cmd != nil {
		embed := &discordgo.MessageEmbed{
			Title:       cmd.Name,
			Description: cmd.Desc,
		}
		if len(cmd.Aliases) > 0 {
			embed.Footer = &discordgo.MessageEmbedFooter{
				Text: "Aliases: " + strings.Join(cmd.Aliases, ", "),
			}
		}
		return embed
	}

	if b.Registry.Slash(strings.ToLower(name)) != nil {
		return &discordgo.MessageEmbed{
			Title:       name,
			Description: fmt.Sprintf("`/%s` is a slash command; its description shows in the command picker", name),
		}
	}

	return &discordgo.MessageEmbed{
		Description: fmt.Sprintf("No command named `%s` found", name),
	}
}
