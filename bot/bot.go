package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/client"
	"github.com/MaxOhn/shishabot/config"
	"github.com/MaxOhn/shishabot/pagination"
	"github.com/MaxOhn/shishabot/ratelimit"
	"github.com/MaxOhn/shishabot/replay"
)

// Bot wires the gateway session to the command stack. Handlers reach
// every shared component through it.
type Bot struct {
	Session     *discordgo.Session
	Cfg         *config.BotConfig
	Client      *client.Client
	Configs     *Configs
	Buckets     *ratelimit.Buckets
	Paginations *pagination.Manager
	Replays     *replay.Queue
	Registry    *Registry
	Counter     *CommandCounter
	BootTime    time.Time

	ctx context.Context
}

func New(cfg *config.BotConfig, store ConfigStore, httpClient *client.Client, registry *Registry, replays *replay.Queue) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Tokens.Discord)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		Session:     session,
		Cfg:         cfg,
		Client:      httpClient,
		Configs:     NewConfigs(store),
		Buckets:     ratelimit.NewBuckets(),
		Paginations: pagination.NewManager(),
		Replays:     replays,
		Registry:    registry,
		Counter:     NewCommandCounter(),
		BootTime:    time.Now(),
		ctx:         context.Background(),
	}

	session.AddHandler(b.handleReady)
	session.AddHandler(b.handleResumed)
	session.AddHandler(b.handleDisconnect)
	session.AddHandler(b.handleGuildCreate)
	session.AddHandler(b.handleMessageCreate)
	session.AddHandler(b.handleInteractionCreate)

	return b, nil
}

// Run opens the gateway connection, registers the slash commands, and
// blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	defer func() {
		if err := b.Session.Close(); err != nil {
			slog.Warn("failed to close gateway connection", slog.Any("err", err))
		}
	}()

	// Dev guild registration propagates instantly; global takes up to an
	// hour, so a configured dev guild wins.
	guildID := ""
	if b.Cfg.DevGuild != 0 {
		guildID = strconv.FormatUint(b.Cfg.DevGuild, 10)
	}

	defs := b.Registry.Collect()
	_, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, guildID, defs)
	if err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}
	slog.Info("slash commands registered", slog.Int("count", len(defs)))

	<-ctx.Done()
	slog.Info("shutting down gateway session")

	return nil
}

// PaginateMessage starts a pagination as a channel message.
func (b *Bot) PaginateMessage(channelID string, cfg pagination.Config) error {
	send := func(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (*discordgo.Message, error) {
		return b.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		})
	}

	return b.Paginations.Start(b.Session, cfg, send)
}

// PaginateInteraction starts a pagination as the response to a slash
// command.
func (b *Bot) PaginateInteraction(cmd *InteractionCommand, cfg pagination.Config) error {
	send := func(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (*discordgo.Message, error) {
		return cmd.CallbackWithResponse(&discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		})
	}

	return b.Paginations.Start(b.Session, cfg, send)
}
