package downloader

import (
	"context"
	"fmt"
)

// lyrics fetches the track lyrics text via the signed lyrics endpoint.
// Propagates yandex.ErrNoLyrics when the API has none despite the track
// meta advertising them.
func (d *Downloader) lyrics(ctx context.Context, trackID string) (string, error) {
	meta, err := d.client.LyricsMeta(ctx, trackID)
	if nil != err {
		return "", err
	}

	text, err := d.client.LyricsText(ctx, meta.DownloadURL)
	if nil != err {
		return "", fmt.Errorf("failed to download lyrics: %w", err)
	}

	return text, nil
}
