package commands

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/MaxOhn/shishabot/bot"
	"github.com/MaxOhn/shishabot/ratelimit"
	"github.com/MaxOhn/shishabot/replay"
)

var renderSlash = &bot.SlashCommand{
	Name:   "render",
	Bucket: ratelimit.Render,
	Create: func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "render",
			Description: "Render an osu! replay file",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "replay",
					Description: "The .osr file to render",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "start",
					Description: "Timestamp in seconds where the video should start",
					MinValue:    &timePointMin,
					MaxValue:    timePointMax,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "end",
					Description: "Timestamp in seconds where the video should end",
					MinValue:    &timePointMin,
					MaxValue:    timePointMax,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "map",
					Description: "Beatmap id to download for the render",
					MinValue:    &timePointMin,
					MaxValue:    mapIDMax,
				},
			},
		}
	},
	Exec: func(ctx context.Context, b *bot.Bot, cmd *bot.InteractionCommand) error {
		attachment := cmd.AttachmentOption("replay")
		if attachment == nil {
			return cmd.Error("Missing the replay attachment")
		}

		job, errMsg, err := queueReplay(ctx, b, queueReplayArgs{
			attachment: attachment,
			channelID:  cmd.ChannelID(),
			guildID:    cmd.GuildID(),
			userID:     cmd.UserID(),
			start:      cmd.IntOption("start"),
			end:        cmd.IntOption("end"),
			mapID:      cmd.IntOption("map"),
		})
		if errMsg != "" {
			_ = cmd.Error(errMsg)
			return err
		}

		return cmd.Callback(&discordgo.InteractionResponseData{
			Content: queuedContent(b, job),
		})
	},
}

var renderPrefix = &bot.PrefixCommand{
	Name:    "render",
	Aliases: []string{"r"},
	Desc:    "Render an attached osu! replay file",
	Bucket:  ratelimit.Render,
	Exec: func(ctx context.Context, b *bot.Bot, msg *discordgo.MessageCreate, args bot.Args) error {
		var attachment *discordgo.MessageAttachment
		for _, a := range msg.Attachments {
			if strings.HasSuffix(a.Filename, ".osr") {
				attachment = a
				break
			}
		}
		if attachment == nil {
			_, err := b.Session.ChannelMessageSend(msg.ChannelID, "Attach a `.osr` replay file to render")
			return err
		}

		job, errMsg, err := queueReplay(ctx, b, queueReplayArgs{
			attachment: attachment,
			channelID:  msg.ChannelID,
			guildID:    msg.GuildID,
			userID:     msg.Author.ID,
		})
		if errMsg != "" {
			_, sendErr := b.Session.ChannelMessageSend(msg.ChannelID, errMsg)
			if err == nil {
				err = sendErr
			}
			return err
		}

		_, err = b.Session.ChannelMessageSend(msg.ChannelID, queuedContent(b, job))
		return err
	},
}

var (
	timePointMin = float64(0)
	timePointMax = float64(math.MaxUint16)
	mapIDMax     = float64(math.MaxUint32)
)

type queueReplayArgs struct {
	attachment *discordgo.MessageAttachment
	channelID  string
	guildID    string
	userID     string
	start      *int64
	end        *int64
	mapID      *int64
}

// queueReplay downloads the replay attachment and appends a render job.
// A non-empty message means the job was not queued; err carries the
// internal failure, if any.
func queueReplay(ctx context.Context, b *bot.Bot, args queueReplayArgs) (*replay.Job, string, error) {
	if !strings.HasSuffix(args.attachment.Filename, ".osr") {
		return nil, "The attachment must be a `.osr` replay file", nil
	}

	data, err := b.Client.GetDiscordAttachment(ctx, args.attachment)
	if err != nil {
		return nil, "Failed to download the replay", err
	}

	dir := filepath.Join(b.Cfg.Paths.Folders, "Downloads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "Failed to store the replay", fmt.Errorf("failed to create downloads dir: %w", err)
	}

	id := uuid.New()
	path := filepath.Join(dir, id.String()+"_"+args.attachment.Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, "Failed to store the replay", fmt.Errorf("failed to write replay file: %w", err)
	}

	job := &replay.Job{
		ID:            id,
		InputChannel:  args.channelID,
		OutputChannel: args.channelID,
		Path:          path,
		User:          args.userID,
		TimePoints:    timePoints(args.start, args.end),
	}

	if args.mapID != nil && *args.mapID > 0 && *args.mapID <= math.MaxUint32 {
		job.MapID = uint32(*args.mapID)
	}

	// A per-guild danser settings file wins over the default one.
	if args.guildID != "" {
		settings := filepath.Join(b.Cfg.Paths.ServerSettings, args.guildID+".json")
		if _, err := os.Stat(settings); err == nil {
			job.Settings = args.guildID
		}
	}

	b.Replays.Push(job)

	return job, "", nil
}

func timePoints(start, end *int64) replay.TimePoints {
	var tp replay.TimePoints
	if start != nil {
		s := clampSeconds(*start)
		tp.Start = &s
	}
	if end != nil {
		e := clampSeconds(*end)
		tp.End = &e
	}
	return tp
}

func clampSeconds(v int64) uint16 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

func queuedContent(b *bot.Bot, job *replay.Job) string {
	return fmt.Sprintf("Queued up `%s` at position %d", job.Name(), b.Replays.Len())
}
