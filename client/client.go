// Package client is the outbound HTTP client shared by command handlers
// and the replay pipeline. Every request is paced by a per-site leaky
// bucket before it touches the socket.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MaxOhn/shishabot/ratelimit"
	"github.com/MaxOhn/shishabot/telemetry"
)

const (
	userAgent             = "shishabot"
	applicationURLEncoded = "application/x-www-form-urlencoded"

	defaultOsuBase = "https://osu.ppy.sh/"

	mapFileAttempts = 10
	// Backoff factor for map-file retries; delays double per attempt and
	// cap at 20 units (10s at the default 500ms unit).
	defaultBackoffUnit = 500 * time.Millisecond
)

// Site classifies an upstream so requests pick the matching rate limiter
// slot.
type Site uint8

const (
	SiteDiscordAttachment Site = iota
	SiteHuismetbenen
	SiteOsekai
	SiteOsuAvatar
	SiteOsuBadge
	SiteOsuMapFile
	SiteOsuMapsetCover
	SiteOsuStats
	SiteOsuTracker
	SiteRespektive

	siteCount
)

func (s Site) String() string {
	switch s {
	case SiteDiscordAttachment:
		return "discord_attachment"
	case SiteHuismetbenen:
		return "huismetbenen"
	case SiteOsekai:
		return "osekai"
	case SiteOsuAvatar:
		return "osu_avatar"
	case SiteOsuBadge:
		return "osu_badge"
	case SiteOsuMapFile:
		return "osu_map_file"
	case SiteOsuMapsetCover:
		return "osu_mapset_cover"
	case SiteOsuStats:
		return "osu_stats"
	case SiteOsuTracker:
		return "osu_tracker"
	case SiteRespektive:
		return "respektive"
	default:
		return "unknown"
	}
}

// StatusError is returned for responses with a 4xx or 5xx status.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed with status code %d when requesting %s", e.Status, e.URL)
}

// Client wraps a pooled HTTP client with one rate limiter per site.
type Client struct {
	http         *http.Client
	ratelimiters [siteCount]*ratelimit.LeakyBucket

	osuBase     string
	backoffUnit time.Duration
}

// New builds the client with the fixed per-site limits.
func New() *Client {
	c := &Client{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: 30 * time.Second,
		},
		osuBase:     defaultOsuBase,
		backoffUnit: defaultBackoffUnit,
	}

	perSecond := [siteCount]int{
		SiteDiscordAttachment: 2,
		SiteHuismetbenen:      2,
		SiteOsekai:            2,
		SiteOsuAvatar:         10,
		SiteOsuBadge:          10,
		SiteOsuMapFile:        5,
		SiteOsuMapsetCover:    10,
		SiteOsuStats:          2,
		SiteOsuTracker:        2,
		SiteRespektive:        1,
	}
	for site, n := range perSecond {
		c.ratelimiters[site] = ratelimit.PerSecond(n)
	}

	return c
}

// Close releases the rate limiter refill loops.
func (c *Client) Close() {
	for _, rl := range c.ratelimiters {
		rl.Close()
	}
}

// Get performs a rate-limited GET and returns the body bytes.
func (c *Client) Get(ctx context.Context, rawURL string, site Site) ([]byte, error) {
	slog.Debug("GET request", slog.String("url", rawURL), slog.String("site", site.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GET request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	return c.do(req, site)
}

// PostForm performs a rate-limited POST with a URL-encoded form body.
func (c *Client) PostForm(ctx context.Context, rawURL string, site Site, form url.Values) ([]byte, error) {
	slog.Debug("POST request", slog.String("url", rawURL), slog.String("site", site.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build POST request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", applicationURLEncoded)

	return c.do(req, site)
}

func (c *Client) do(req *http.Request, site Site) ([]byte, error) {
	if err := c.ratelimiters[site].AcquireOne(req.Context()); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}
	defer resp.Body.Close()

	telemetry.CountHTTPRequest(site.String(), strconv.Itoa(resp.StatusCode))

	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Status: resp.StatusCode, URL: req.URL.String()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to extract response bytes: %w", err)
	}

	return body, nil
}

// GetDiscordAttachment downloads an attachment uploaded to Discord.
func (c *Client) GetDiscordAttachment(ctx context.Context, attachment *discordgo.MessageAttachment) ([]byte, error) {
	return c.Get(ctx, attachment.URL, SiteDiscordAttachment)
}
