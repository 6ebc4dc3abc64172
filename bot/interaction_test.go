package bot

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func testInteraction(userID, name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: name},
		User: &discordgo.User{ID: userID},
	}}
}

func TestSkipDeferKeepsEphemeralFlag(t *testing.T) {
	b := testBot(t, nil)

	var gotEphemeral bool
	slash := &SlashCommand{
		Name:  "secret",
		Flags: FlagSkipDefer | FlagEphemeral,
		Exec: func(ctx context.Context, b *Bot, cmd *InteractionCommand) error {
			gotEphemeral = cmd.ephemeral
			return nil
		},
	}

	cmd := newInteractionCommand(nil, testInteraction("1", "secret"))

	result, err := b.processSlashCommand(context.Background(), slash, cmd)
	if err != nil {
		t.Fatalf("processSlashCommand: %v", err)
	}
	if result != ProcessSuccess {
		t.Fatalf("result = %s, want Success", result)
	}
	if !gotEphemeral {
		t.Error("ephemeral flag was not carried to the executor")
	}
}

func TestSkipDeferWithoutEphemeral(t *testing.T) {
	b := testBot(t, nil)

	var gotEphemeral bool
	slash := &SlashCommand{
		Name:  "plain",
		Flags: FlagSkipDefer,
		Exec: func(ctx context.Context, b *Bot, cmd *InteractionCommand) error {
			gotEphemeral = cmd.ephemeral
			return nil
		},
	}

	cmd := newInteractionCommand(nil, testInteraction("2", "plain"))

	if _, err := b.processSlashCommand(context.Background(), slash, cmd); err != nil {
		t.Fatalf("processSlashCommand: %v", err)
	}
	if gotEphemeral {
		t.Error("ephemeral flag set for a command without it")
	}
}
