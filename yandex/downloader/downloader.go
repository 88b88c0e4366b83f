// Package downloader walks album and playlist metadata trees and drives
// the per-track acquisition pipeline: signed file-info, ranged download,
// optional decryption and remuxing, tagging, and lyrics.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/xeptore/yamusic/cache"
	"github.com/xeptore/yamusic/config"
	"github.com/xeptore/yamusic/ratelimit"
	"github.com/xeptore/yamusic/yandex"
	"github.com/xeptore/yamusic/yandex/fs"
	"github.com/xeptore/yamusic/yandex/mux"
	"github.com/xeptore/yamusic/yandex/types"
)

var (
	ErrAlbumUnavailable    = errors.New("album is unavailable")
	ErrPlaylistUnavailable = errors.New("playlist is unavailable")
	ErrTrackNotFound       = errors.New("track not found in album")
)

type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}

	return "unknown"
}

// TrackResult is one row of the end-of-run summary.
type TrackResult struct {
	Artist  string
	Title   string
	Format  string
	Outcome Outcome
	Err     error
}

type Downloader struct {
	client  *yandex.Client
	conf    *config.Config
	cache   *cache.Cache
	planner fs.Planner
	muxer   mux.Muxer
	quality string
}

func New(client *yandex.Client, conf *config.Config, cache *cache.Cache) (*Downloader, error) {
	quality, err := types.ResolveQuality(conf.Quality)
	if nil != err {
		return nil, err
	}

	return &Downloader{
		client: client,
		conf:   conf,
		cache:  cache,
		planner: fs.Planner{ //nolint:exhaustruct
			AlbumTemplate: conf.AlbumTemplate,
			TrackTemplate: conf.TrackTemplate,
		},
		muxer:   mux.New(conf.FFmpegPath),
		quality: quality,
	}, nil
}

// Download processes one parsed link. Track-level failures are contained
// in the returned results; the returned error means the whole link failed.
func (d *Downloader) Download(ctx context.Context, logger zerolog.Logger, link types.Link) ([]TrackResult, error) {
	switch k := link.Kind; k {
	case types.LinkKindAlbum:
		return d.album(ctx, logger, link.AlbumID, "")
	case types.LinkKindAlbumTrack:
		return d.album(ctx, logger, link.AlbumID, link.TrackID)
	case types.LinkKindPlaylist:
		return d.playlist(ctx, logger, link.PlaylistID)
	default:
		panic("unexpected link kind: " + strconv.Itoa(int(k)))
	}
}

func (d *Downloader) sleepBetweenTracks(ctx context.Context) error {
	if !d.conf.Sleep {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(ratelimit.TrackSleep()):
		return nil
	}
}

func (d *Downloader) getAlbumMeta(ctx context.Context, albumID string) (*types.AlbumMeta, error) {
	cached, err := d.cache.AlbumsMeta.Fetch(
		albumID,
		cache.DefaultAlbumMetaTTL,
		func() (*types.AlbumMeta, error) { return d.client.AlbumMeta(ctx, albumID) },
	)
	if nil != err {
		return nil, err
	}

	return cached.Value(), nil
}

func failure(meta *types.TrackMeta, err error) TrackResult {
	return TrackResult{
		Artist:  meta.Artist,
		Title:   meta.Title,
		Format:  "",
		Outcome: OutcomeFailed,
		Err:     err,
	}
}

func unavailable(artist, title string) TrackResult {
	return TrackResult{
		Artist:  artist,
		Title:   title,
		Format:  "",
		Outcome: OutcomeFailed,
		Err:     errors.New("track is unavailable"),
	}
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); nil != err {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}

	return nil
}
