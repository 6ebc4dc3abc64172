package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// InteractionCommand wraps an application command interaction with its
// response bookkeeping.
type InteractionCommand struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Data        discordgo.ApplicationCommandInteractionData

	deferred  bool
	ephemeral bool
}

func newInteractionCommand(s *discordgo.Session, i *discordgo.InteractionCreate) *InteractionCommand {
	return &InteractionCommand{
		Session:     s,
		Interaction: i,
		Data:        i.ApplicationCommandData(),
	}
}

// User returns the invoking user, wherever the interaction came from.
func (c *InteractionCommand) User() *discordgo.User {
	if c.Interaction.Member != nil && c.Interaction.Member.User != nil {
		return c.Interaction.Member.User
	}
	return c.Interaction.User
}

func (c *InteractionCommand) UserID() string {
	if user := c.User(); user != nil {
		return user.ID
	}
	return ""
}

func (c *InteractionCommand) GuildID() string {
	return c.Interaction.GuildID
}

func (c *InteractionCommand) ChannelID() string {
	return c.Interaction.ChannelID
}

// Defer acknowledges the interaction so the executor can take its time.
func (c *InteractionCommand) Defer(ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("failed to defer interaction: %w", err)
	}

	c.deferred = true
	c.ephemeral = ephemeral

	return nil
}

// Callback sends the command response, as a follow-up edit when the
// interaction was deferred.
func (c *InteractionCommand) Callback(data *discordgo.InteractionResponseData) error {
	_, err := c.CallbackWithResponse(data)
	return err
}

// CallbackWithResponse sends the command response and returns the
// resulting message.
func (c *InteractionCommand) CallbackWithResponse(data *discordgo.InteractionResponseData) (*discordgo.Message, error) {
	if c.deferred {
		edit := &discordgo.WebhookEdit{}
		if data.Content != "" {
			edit.Content = &data.Content
		}
		if data.Embeds != nil {
			edit.Embeds = &data.Embeds
		}
		if data.Components != nil {
			edit.Components = &data.Components
		}

		msg, err := c.Session.InteractionResponseEdit(c.Interaction.Interaction, edit)
		if err != nil {
			return nil, fmt.Errorf("failed to edit interaction response: %w", err)
		}

		return msg, nil
	}

	if c.ephemeral {
		data.Flags |= discordgo.MessageFlagsEphemeral
	}

	err := c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to respond to interaction: %w", err)
	}

	msg, err := c.Session.InteractionResponse(c.Interaction.Interaction)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interaction response: %w", err)
	}

	return msg, nil
}

// Error sends an ephemeral error notice to the invoker.
func (c *InteractionCommand) Error(content string) error {
	if c.deferred {
		_, err := c.Session.FollowupMessageCreate(c.Interaction.Interaction, true, &discordgo.WebhookParams{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return err
	}

	return c.Session.InteractionRespond(c.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// Option returns the named top-level option, or nil.
func (c *InteractionCommand) Option(name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range c.Data.Options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// StringOption returns the named string option, or "".
func (c *InteractionCommand) StringOption(name string) string {
	if opt := c.Option(name); opt != nil {
		return opt.StringValue()
	}
	return ""
}

// IntOption returns the named integer option, or nil when absent.
func (c *InteractionCommand) IntOption(name string) *int64 {
	if opt := c.Option(name); opt != nil {
		v := opt.IntValue()
		return &v
	}
	return nil
}

// AttachmentOption resolves the named attachment option, or nil.
func (c *InteractionCommand) AttachmentOption(name string) *discordgo.MessageAttachment {
	opt := c.Option(name)
	if opt == nil {
		return nil
	}

	id, ok := opt.Value.(string)
	if !ok || c.Data.Resolved == nil {
		return nil
	}

	return c.Data.Resolved.Attachments[id]
}
