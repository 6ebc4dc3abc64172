package replay

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/attribute"

	"github.com/MaxOhn/shishabot/client"
	"github.com/MaxOhn/shishabot/config"
	"github.com/MaxOhn/shishabot/telemetry"
)

// Renderer abstracts the external render tool (for tests/mocks).
type Renderer interface {
	Render(ctx context.Context, cfg *config.BotConfig, job *Job) (string, error)
}

// Uploader abstracts the video upload destination.
type Uploader interface {
	Upload(s *discordgo.Session, channelID, content, name, path string) error
}

type danserRenderer struct{}

type discordUploader struct{}

// configurable for tests
var (
	renderer Renderer = danserRenderer{}
	uploader Uploader = discordUploader{}
)

// Worker drains the queue sequentially: download map, render, upload.
type Worker struct {
	Queue   *Queue
	Client  *client.Client
	Cfg     *config.BotConfig
	Session *discordgo.Session
}

// Run processes jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	slog.Info("replay render worker starting")

	for {
		job, err := w.Queue.Next(ctx)
		if err != nil {
			slog.Info("replay render worker stopped")
			return
		}

		w.process(ctx, job)
		w.Queue.Finish()
	}
}

func (w *Worker) process(ctx context.Context, job *Job) {
	ctx, span := telemetry.StartSpan(ctx, "replay", "process_replay",
		attribute.String("job_id", job.ID.String()),
		attribute.String("user", job.User),
	)
	defer span.End()

	logger := slog.Default().With(
		slog.String("job_id", job.ID.String()),
		slog.String("user", job.User),
		slog.String("component", "replay_process"),
	)
	logger.Info("processing replay", slog.String("name", job.Name()))

	if err := w.ensureMapFile(ctx, job); err != nil {
		logger.Error("map download failed", slog.Any("err", err))
		telemetry.RecordError(span, err)
		telemetry.CountRenderFailed()
		w.notify(job.InputChannel, fmt.Sprintf("<@%s> Failed to download the map for `%s`", job.User, job.Name()))
		return
	}

	job.Status.Set(StatusRendering, 0)

	var (
		videoPath string
		err       error
	)
	renderDur := telemetry.TimeFunc(telemetry.RenderDuration, func() {
		videoPath, err = renderer.Render(ctx, w.Cfg, job)
	})
	if err != nil {
		logger.Error("render failed", slog.Any("err", err), slog.Duration("render_duration", renderDur))
		telemetry.RecordError(span, err)
		telemetry.CountRenderFailed()
		w.notify(job.InputChannel, fmt.Sprintf("<@%s> Failed to render `%s`", job.User, job.Name()))
		return
	}

	logger.Info("render complete", slog.String("path", videoPath), slog.Duration("render_duration", renderDur))

	job.Status.Set(StatusUploading, 0)

	content := fmt.Sprintf("<@%s> Rendered `%s`", job.User, job.Name())
	upDur := telemetry.TimeFunc(telemetry.UploadDuration, func() {
		err = uploader.Upload(w.Session, job.OutputChannel, content, job.Name()+".mp4", videoPath)
	})
	if err != nil {
		logger.Error("upload failed", slog.Any("err", err), slog.Duration("upload_duration", upDur))
		telemetry.RecordError(span, err)
		telemetry.CountRenderFailed()
		w.notify(job.InputChannel, fmt.Sprintf("<@%s> Failed to upload the video for `%s`", job.User, job.Name()))
		return
	}

	telemetry.SetSpanSuccess(span)
	telemetry.CountRenderSucceeded()
	logger.Info("replay processed", slog.Duration("upload_duration", upDur))

	if err := os.Remove(videoPath); err != nil {
		logger.Warn("failed to remove rendered video", slog.Any("err", err))
	}
	if err := os.Remove(job.Path); err != nil {
		logger.Warn("failed to remove replay file", slog.Any("err", err))
	}
}

// ensureMapFile downloads the beatmap unless it is already on disk or the
// job carries no map id.
func (w *Worker) ensureMapFile(ctx context.Context, job *Job) error {
	if job.MapID == 0 {
		return nil
	}

	mapPath := filepath.Join(w.Cfg.Paths.Maps, fmt.Sprintf("%d.osu", job.MapID))
	if _, err := os.Stat(mapPath); err == nil {
		return nil
	}

	job.Status.Set(StatusDownloading, 0)

	data, err := w.Client.GetMapFile(ctx, job.MapID)
	if err != nil {
		return err
	}

	if err := os.WriteFile(mapPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write map file: %w", err)
	}

	return nil
}

func (w *Worker) notify(channelID, content string) {
	if w.Session == nil {
		return
	}
	if _, err := w.Session.ChannelMessageSend(channelID, content); err != nil {
		slog.Warn("failed to send replay notice", slog.Any("err", err))
	}
}

var progressRe = regexp.MustCompile(`(\d{1,3})%`)

// Render shells out to danser and scrapes render/encode progress from its
// stdout into the job status.
func (danserRenderer) Render(ctx context.Context, cfg *config.BotConfig, job *Job) (string, error) {
	settings := job.Settings
	if settings == "" {
		settings = "default"
	}

	args := []string{
		"--replay", job.Path,
		"--record",
		"--quickstart",
		"--out", job.ID.String(),
		"--settings", settings,
	}
	if job.TimePoints.Start != nil {
		args = append(args, "--start", strconv.Itoa(int(*job.TimePoints.Start)))
	}
	if job.TimePoints.End != nil {
		args = append(args, "--end", strconv.Itoa(int(*job.TimePoints.End)))
	}

	bin := filepath.Join(cfg.Paths.Folders, "danser", "danser")
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = filepath.Dir(bin)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to pipe danser stdout: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start danser: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	encoding := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "Finishing") || strings.Contains(line, "Encoding") {
			encoding = true
		}
		m := progressRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		progress, err := strconv.Atoi(m[1])
		if err != nil || progress > 100 {
			continue
		}
		if encoding {
			job.Status.Set(StatusEncoding, uint8(progress))
		} else {
			job.Status.Set(StatusRendering, uint8(progress))
		}
	}

	if err := cmd.Wait(); err != nil {
		return "", fmt.Errorf("danser failed: %w", err)
	}

	return filepath.Join(cfg.Paths.Folders, "danser", "videos", job.ID.String()+".mp4"), nil
}

// Upload attaches the rendered video to a message in the output channel.
func (discordUploader) Upload(s *discordgo.Session, channelID, content, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open rendered video: %w", err)
	}
	defer f.Close()

	_, err = s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Files:   []*discordgo.File{{Name: name, Reader: f}},
	})
	if err != nil {
		return fmt.Errorf("failed to upload video: %w", err)
	}

	return nil
}
