package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

var htmlSentinel = []byte("<html>")

// GetMapFile downloads the .osu file for a beatmap. The osu! web endpoint
// intermittently answers 429 or an HTML error page; only those two cases
// are retried, with exponential backoff, up to 10 attempts.
func (c *Client) GetMapFile(ctx context.Context, mapID uint32) ([]byte, error) {
	url := fmt.Sprintf("%sosu/%d", c.osuBase, mapID)

	for attempt := 1; attempt <= mapFileAttempts; attempt++ {
		body, err := c.Get(ctx, url, SiteOsuMapFile)

		if !shouldRetryMapFile(body, err) {
			return body, err
		}

		delay := backoffDelay(c.backoffUnit, attempt)
		slog.Debug("map file retry",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", delay),
			slog.Uint64("map_id", uint64(mapID)),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("reached retry limit and still failed to download %d.osu", mapID)
}

func shouldRetryMapFile(body []byte, err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status == http.StatusTooManyRequests
	}

	return err == nil && bytes.HasPrefix(body, htmlSentinel)
}

// backoffDelay doubles per attempt starting at unit, capped at 20 units.
func backoffDelay(unit time.Duration, attempt int) time.Duration {
	max := 20 * unit

	delay := unit
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}

	return delay
}
