package downloader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/xeptore/yamusic/yandex/fs"
	"github.com/xeptore/yamusic/yandex/types"
)

func (d *Downloader) playlist(
	ctx context.Context,
	logger zerolog.Logger,
	playlistKind string,
) ([]TrackResult, error) {
	logger = logger.With().Str("playlist_kind", playlistKind).Logger()

	playlistUUID, err := d.client.UserPlaylistUUID(ctx, playlistKind)
	if nil != err {
		return nil, fmt.Errorf("failed to resolve playlist: %w", err)
	}

	meta, err := d.client.PlaylistMeta(ctx, playlistUUID)
	if nil != err {
		return nil, fmt.Errorf("failed to get playlist meta: %w", err)
	}
	if !meta.Available {
		return nil, ErrPlaylistUnavailable
	}

	logger.Info().
		Str("owner", meta.Owner.Login).
		Str("title", meta.Title).
		Int("track_total", len(meta.Tracks)).
		Msg("Processing playlist")

	dir := filepath.Join(d.conf.OutDir, fs.SanitizeDir(meta.Owner.Login+" - "+meta.Title))
	if err := ensureDir(dir); nil != err {
		return nil, err
	}

	trackTotal := len(meta.Tracks)

	var results []TrackResult
	for i := range meta.Tracks {
		track := &meta.Tracks[i].Track
		trackNum := i + 1

		if !track.Available {
			logger.Warn().Str("track_title", track.Title).Msg("Track is unavailable")
			results = append(results, unavailable(types.JoinArtists(track.Artists), track.Title))
			continue
		}

		if len(track.Albums) == 0 || !track.Albums[0].Available {
			logger.Warn().Str("track_title", track.Title).Msg("Track album is unavailable")
			results = append(results, unavailable(types.JoinArtists(track.Artists), track.Title))
			continue
		}

		trackMeta := types.PlaylistTrackAlbumMeta(&track.Albums[0], trackTotal, nil)
		if d.conf.EmbedCovers {
			coverData, err := d.cover(ctx, track.CoverURI)
			if nil != err {
				logger.Warn().Err(err).Str("track_title", track.Title).Msg("Failed to download track cover")
			} else {
				trackMeta.CoverData = coverData
			}
		}
		trackMeta.FillFromPlaylistTrack(track, trackNum)

		results = append(results, d.track(ctx, logger, track.ID, &trackMeta, dir))

		if err := d.sleepBetweenTracks(ctx); nil != err {
			return results, err
		}
	}

	return results, nil
}
