package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/xeptore/yamusic/yandex/fs"
	"github.com/xeptore/yamusic/yandex/types"
)

func (d *Downloader) album(
	ctx context.Context,
	logger zerolog.Logger,
	albumID string,
	trackID string,
) ([]TrackResult, error) {
	trackOnly := trackID != ""
	logger = logger.With().Str("album_id", albumID).Logger()

	meta, err := d.getAlbumMeta(ctx, albumID)
	if nil != err {
		return nil, fmt.Errorf("failed to get album meta: %w", err)
	}
	if !meta.Available {
		return nil, ErrAlbumUnavailable
	}

	var trackTotal int
	for _, volume := range meta.Volumes {
		trackTotal += len(volume)
	}

	albumMeta := types.AlbumTrackMeta(meta, trackTotal)
	logger.Info().
		Str("album_artist", albumMeta.AlbumArtist).
		Str("album_title", albumMeta.AlbumTitle).
		Int("track_total", trackTotal).
		Msg("Processing album")

	dir := filepath.Join(d.conf.OutDir, d.planner.AlbumDirName(fs.VarsFrom(&albumMeta)))
	if err := ensureDir(dir); nil != err {
		return nil, err
	}

	if d.conf.KeepCovers || d.conf.EmbedCovers {
		coverData, err := d.cover(ctx, meta.CoverURI)
		if nil != err {
			logger.Warn().Err(err).Msg("Failed to download album cover")
		} else {
			if d.conf.KeepCovers {
				if err := os.WriteFile(filepath.Join(dir, "folder.jpg"), coverData, 0o644); nil != err {
					return nil, fmt.Errorf("failed to write album cover file: %v", err)
				}
			}
			if d.conf.EmbedCovers {
				albumMeta.CoverData = coverData
			}
		}
	}

	var results []TrackResult
	trackNum := 0
	found := false
	for _, volume := range meta.Volumes {
		for i := range volume {
			track := &volume[i]
			trackNum++
			if trackOnly && track.ID != trackID {
				continue
			}
			found = true

			if !track.Available {
				logger.Warn().Str("track_title", track.Title).Msg("Track is unavailable")
				results = append(results, unavailable(types.JoinArtists(track.Artists), track.Title))
				continue
			}

			trackMeta := albumMeta
			trackMeta.FillFromAlbumTrack(track, trackNum, trackOnly)

			results = append(results, d.track(ctx, logger, track.ID, &trackMeta, dir))

			if err := d.sleepBetweenTracks(ctx); nil != err {
				return results, err
			}
		}
	}

	if trackOnly && !found {
		return nil, ErrTrackNotFound
	}

	return results, nil
}
