package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/xeptore/yamusic/unit"
	"github.com/xeptore/yamusic/yandex"
	"github.com/xeptore/yamusic/yandex/crypt"
	"github.com/xeptore/yamusic/yandex/fs"
	"github.com/xeptore/yamusic/yandex/tag"
	"github.com/xeptore/yamusic/yandex/types"
)

// track runs the acquisition pipeline for a single track. Failures are
// contained in the returned result; the caller logs and moves on.
func (d *Downloader) track(
	ctx context.Context,
	logger zerolog.Logger,
	trackID string,
	meta *types.TrackMeta,
	dir string,
) TrackResult {
	logger = logger.With().Str("track_id", trackID).Logger()

	vars := fs.VarsFrom(meta)

	// Probe every producible extension before touching the network so a
	// rerun over an already-downloaded album costs nothing.
	if path, exists, err := d.planner.AnyExists(dir, vars); nil != err {
		return failure(meta, err)
	} else if exists {
		logger.Info().Str("path", path).Msg("Track already exists locally")
		return TrackResult{
			Artist:  meta.Artist,
			Title:   meta.Title,
			Format:  "",
			Outcome: OutcomeSkipped,
			Err:     nil,
		}
	}

	info, err := d.client.FileInfo(ctx, trackID, d.quality)
	if nil != err {
		return failure(meta, fmt.Errorf("failed to get file info: %w", err))
	}

	specs, err := types.ResolveSpecs(info.Codec, info.Bitrate)
	if nil != err {
		return failure(meta, err)
	}

	if meta.TrackOnly {
		logger.Info().Msgf("Track 1 of 1: %s - %s", meta.Title, specs.Display)
	} else {
		logger.Info().Msgf("Track %d of %d: %s - %s", meta.TrackNum, meta.TrackTotal, meta.Title, specs.Display)
	}

	pl := d.planner.Track(dir, vars, specs.Ext)
	if pl.Fallback {
		logger.Warn().Msg("Track exceeds max path length; will be named <track_num><ext> instead")
	}

	// The probe above covers templated names; the fallback stem is only
	// known once the extension is, so recheck the exact final path.
	if exists, err := fs.FileExists(pl.Final()); nil != err {
		return failure(meta, err)
	} else if exists {
		logger.Info().Str("path", pl.Final()).Msg("Track already exists locally")
		return TrackResult{
			Artist:  meta.Artist,
			Title:   meta.Title,
			Format:  specs.Display,
			Outcome: OutcomeSkipped,
			Err:     nil,
		}
	}

	if err := d.materialize(ctx, logger, info, specs, pl); nil != err {
		return failure(meta, err)
	}

	if (d.conf.WriteLyrics || d.conf.LyricsSidecar) && meta.Lyrics != types.LyricsNone {
		text, err := d.lyrics(ctx, trackID)
		switch {
		case errors.Is(err, yandex.ErrNoLyrics):
			logger.Debug().Msg("No lyrics available for track")
		case nil != err:
			logger.Warn().Err(err).Msg("Failed to fetch track lyrics")
		default:
			if d.conf.WriteLyrics {
				meta.LyricsText = text
			}
			if d.conf.LyricsSidecar && meta.Lyrics == types.LyricsTimed {
				if err := os.WriteFile(pl.Lyrics(), []byte(text), 0o644); nil != err {
					logger.Warn().Err(err).Msg("Failed to write lyrics sidecar file")
				}
			}
		}
	}

	if err := tag.ForFamily(specs.Family).Write(pl.Final(), meta); nil != err {
		return failure(meta, fmt.Errorf("failed to write tags: %w", err))
	}

	return TrackResult{
		Artist:  meta.Artist,
		Title:   meta.Title,
		Format:  specs.Display,
		Outcome: OutcomeDone,
		Err:     nil,
	}
}

// materialize downloads the media payload and shapes it into the final
// file: ranged download to the .incomplete temp, optional decryption into
// .incomplete_dec, optional remux back into .incomplete, atomic rename.
func (d *Downloader) materialize(
	ctx context.Context,
	logger zerolog.Logger,
	info *types.DownloadInfo,
	specs types.Specs,
	pl fs.Plan,
) (err error) {
	defer func() {
		if nil != err {
			for _, tmp := range []string{pl.Incomplete(), pl.IncompleteDec()} {
				if removeErr := os.Remove(tmp); nil != removeErr && !errors.Is(removeErr, os.ErrNotExist) {
					err = errors.Join(err, fmt.Errorf("failed to remove temp file: %v", removeErr))
				}
			}
		}
	}()

	if err := d.download(ctx, logger, info.URL, pl.Incomplete()); nil != err {
		return err
	}

	if specs.Encrypted {
		if err := decryptFile(pl.Incomplete(), pl.IncompleteDec(), info.Key); nil != err {
			return err
		}

		logger.Debug().Str("muxer", specs.Muxer).Msg("Remuxing decrypted stream")
		if err := d.muxer.Remux(ctx, pl.IncompleteDec(), pl.Incomplete(), specs.Muxer); nil != err {
			return err
		}
	}

	return pl.Finalize(pl.Incomplete())
}

func (d *Downloader) download(ctx context.Context, logger zerolog.Logger, mediaURL, outPath string) (err error) {
	body, length, err := d.client.OpenMedia(ctx, mediaURL)
	if nil != err {
		return fmt.Errorf("failed to open media stream: %w", err)
	}
	defer func() {
		if closeErr := body.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close media stream: %v", closeErr))
		}
	}()

	f, err := os.Create(outPath)
	if nil != err {
		return fmt.Errorf("failed to create track file: %v", err)
	}
	defer func() {
		if closeErr := f.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close track file: %v", closeErr))
		}
	}()

	logger.Debug().
		Int64("content_length", length).
		Str("size", fmt.Sprintf("%.1f MiB", float64(length)/unit.Mebibyte)).
		Msg("Downloading track payload")

	bar := progressbar.DefaultBytes(length, "downloading")
	defer func() {
		if closeErr := bar.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close progress bar: %v", closeErr))
		}
	}()

	if _, err := io.Copy(io.MultiWriter(f, bar), body); nil != err {
		return fmt.Errorf("failed to download track payload: %v", err)
	}

	return nil
}

func decryptFile(inPath, outPath, hexKey string) (err error) {
	in, err := os.Open(inPath)
	if nil != err {
		return fmt.Errorf("failed to open encrypted track file: %v", err)
	}
	defer func() {
		if closeErr := in.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close encrypted track file: %v", closeErr))
		}
	}()

	dec, err := crypt.NewReader(in, hexKey)
	if nil != err {
		return err
	}

	out, err := os.Create(outPath)
	if nil != err {
		return fmt.Errorf("failed to create decrypted track file: %v", err)
	}
	defer func() {
		if closeErr := out.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close decrypted track file: %v", closeErr))
		}
	}()

	if _, err := io.Copy(out, dec); nil != err {
		return fmt.Errorf("failed to decrypt track payload: %v", err)
	}

	return nil
}
