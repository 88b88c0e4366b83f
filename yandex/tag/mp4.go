package tag

import (
	"fmt"

	"github.com/Sorrow446/go-mp4tag"

	"github.com/xeptore/yamusic/yandex/types"
)

type mp4Writer struct{}

func (mp4Writer) Write(path string, meta *types.TrackMeta) error {
	f, err := mp4tag.Open(path)
	if nil != err {
		return fmt.Errorf("failed to open m4a file for tagging: %v", err)
	}
	defer f.Close()

	tags := &mp4tag.MP4Tags{ //nolint:exhaustruct
		Album:       meta.AlbumTitle,
		AlbumArtist: meta.AlbumArtist,
		Artist:      meta.Artist,
		Title:       meta.Title,
	}
	if meta.TrackNum > 0 {
		tags.TrackNumber = int16(meta.TrackNum)
	}
	if meta.TrackTotal > 0 {
		tags.TrackTotal = int16(meta.TrackTotal)
	}
	if meta.Genre != "" {
		tags.CustomGenre = meta.Genre
	}
	if meta.Year > 0 {
		tags.Year = int32(meta.Year)
	}
	// Single lyrics atom: timed wins over untimed when both exist.
	if meta.LyricsText != "" && meta.Lyrics != types.LyricsNone {
		tags.Lyrics = meta.LyricsText
	}
	if len(meta.CoverData) > 0 {
		tags.Pictures = []*mp4tag.MP4Picture{
			{Format: mp4tag.ImageTypeAuto, Data: meta.CoverData}, //nolint:exhaustruct
		}
	}

	if err := f.Write(tags, []string{}); nil != err {
		return fmt.Errorf("failed to write m4a tags: %v", err)
	}

	return nil
}
