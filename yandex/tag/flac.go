package tag

import (
	"fmt"
	"strconv"

	"github.com/go-flac/flacpicture/v2"
	"github.com/go-flac/flacvorbis/v2"
	flac "github.com/go-flac/go-flac/v2"

	"github.com/xeptore/yamusic/yandex/types"
)

type flacWriter struct{}

func setVorbis(cmt *flacvorbis.MetaDataBlockVorbisComment, key, value string) error {
	if value == "" {
		return nil
	}
	if err := cmt.Add(key, value); nil != err {
		return fmt.Errorf("failed to add %s vorbis comment: %v", key, err)
	}

	return nil
}

func setVorbisNum(cmt *flacvorbis.MetaDataBlockVorbisComment, key string, n int) error {
	if n <= 0 {
		return nil
	}

	return setVorbis(cmt, key, strconv.Itoa(n))
}

func (flacWriter) Write(path string, meta *types.TrackMeta) error {
	f, err := flac.ParseFile(path)
	if nil != err {
		return fmt.Errorf("failed to parse flac file: %v", err)
	}

	// The remuxed stream may already carry a VORBIS_COMMENT block (ffmpeg
	// writes one with its encoder string). The format allows exactly one,
	// so merge into the existing block instead of appending a second.
	cmt := flacvorbis.New()
	cmtIdx := -1
	for i, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			existing, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if nil != err {
				return fmt.Errorf("failed to parse existing vorbis comment block: %v", err)
			}
			cmt = existing
			cmtIdx = i

			break
		}
	}

	fields := []error{
		setVorbis(cmt, "ALBUM", meta.AlbumTitle),
		setVorbis(cmt, "ALBUMARTIST", meta.AlbumArtist),
		setVorbis(cmt, "ARTIST", meta.Artist),
		setVorbis(cmt, "TITLE", meta.Title),
		setVorbis(cmt, "GENRE", meta.Genre),
		setVorbis(cmt, "LABEL", meta.Label),
		setVorbisNum(cmt, "TRACKNUMBER", meta.TrackNum),
		setVorbisNum(cmt, "TRACKTOTAL", meta.TrackTotal),
		setVorbisNum(cmt, "YEAR", meta.Year),
	}
	if meta.LyricsText != "" {
		switch meta.Lyrics {
		case types.LyricsTimed:
			fields = append(fields, setVorbis(cmt, "LYRICS", meta.LyricsText))
		case types.LyricsUntimed:
			fields = append(fields, setVorbis(cmt, "UNSYNCEDLYRICS", meta.LyricsText))
		case types.LyricsNone:
		}
	}
	for _, err := range fields {
		if nil != err {
			return err
		}
	}

	cmtBlock := cmt.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &cmtBlock
	} else {
		f.Meta = append(f.Meta, &cmtBlock)
	}

	if len(meta.CoverData) > 0 {
		pic, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"",
			meta.CoverData,
			coverMIME(meta.CoverData),
		)
		if nil != err {
			return fmt.Errorf("failed to build flac picture block: %v", err)
		}
		picBlock := pic.Marshal()
		f.Meta = append(f.Meta, &picBlock)
	}

	if err := f.Save(path); nil != err {
		return fmt.Errorf("failed to save flac file: %v", err)
	}

	return nil
}
