package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/bot"
)

var skinSlash = &bot.SlashCommand{
	Name:  "skin",
	Flags: bot.FlagOnlyOwner | bot.FlagSkipDefer,
	Create: func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "skin",
			Description: "Skinlist configuration",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a skin to the skinlist",
					Options: []*discordgo.ApplicationCommandOption{{
						Type:        discordgo.ApplicationCommandOptionAttachment,
						Name:        "skin",
						Description: "Skin that you want to add",
						Required:    true,
					}},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a skin from the skinlist",
					Options: []*discordgo.ApplicationCommandOption{{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "index",
						Description: "Index of the skin that you want to remove",
						Required:    true,
						MinValue:    &skinIndexMin,
					}},
				},
			},
		}
	},
	Exec: func(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand) error {
		if len(cmd.Data.Options) == 0 {
			return cmd.Error("Expected a subcommand")
		}

		sub := cmd.Data.Options[0]
		switch sub.Name {
		case "add":
			return skinAdd(ctx, b, cmd, sub)
		case "remove":
			return skinRemove(b, cmd, sub)
		default:
			return cmd.Error(fmt.Sprintf("Unknown subcommand `%s`", sub.Name))
		}
	},
}

var skinIndexMin = float64(1)

func skinAdd(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	var attachment *discordgo.MessageAttachment
	for _, opt := range sub.Options {
		if opt.Name != "skin" {
			continue
		}
		if id, ok := opt.Value.(string); ok && cmd.Data.Resolved != nil {
			attachment = cmd.Data.Resolved.Attachments[id]
		}
	}
	if attachment == nil {
		return cmd.Error("Missing the skin attachment")
	}

	if filepath.Ext(attachment.Filename) != ".osk" {
		return cmd.Error("The attachment must be an `.osk` file")
	}

	data, err := b.Client.GetDiscordAttachment(ctx, attachment)
	if err != nil {
		_ = cmd.Error("Failed to download the attachment")
		return err
	}

	dir := skinsDir(b)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_ = cmd.Error("Failed to store the skin")
		return fmt.Errorf("failed to create skins dir: %w", err)
	}

	path := filepath.Join(dir, attachment.Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		_ = cmd.Error("Failed to store the skin")
		return fmt.Errorf("failed to write skin file: %w", err)
	}

	return cmd.Callback(&discordgo.InteractionResponseData{
		Content: fmt.Sprintf("Added skin `%s` to the skinlist", attachment.Filename),
	})
}

func skinRemove(b *bot.Bot, cmd *bot.InteractionCommand, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	var index int64
	for _, opt := range sub.Options {
		if opt.Name == "index" {
			index = opt.IntValue()
		}
	}

	skins, err := listSkins(b)
	if err != nil {
		_ = cmd.Error("Failed to list the skins")
		return err
	}

	if index < 1 || index > int64(len(skins)) {
		return cmd.Error(fmt.Sprintf("Expected an index between 1 and %d", len(skins)))
	}

	name := skins[index-1]
	if err := os.RemoveAll(filepath.Join(skinsDir(b), name)); err != nil {
		_ = cmd.Error("Failed to remove the skin")
		return fmt.Errorf("failed to remove skin: %w", err)
	}

	return cmd.Callback(&discordgo.InteractionResponseData{
		Content: fmt.Sprintf("Removed skin `%s` from the skinlist", name),
	})
}

func skinsDir(b *bot.Bot) string {
	return filepath.Join(b.Cfg.Paths.Folders, "Skins")
}

// listSkins returns the stored skin names in sorted order.
func listSkins(b *bot.Bot) ([]string, error) {
	entries, err := os.ReadDir(skinsDir(b))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read skins dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}
