package tag

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bogem/id3v2"

	"github.com/xeptore/yamusic/yandex/types"
)

type mp3Writer struct{}

func (mp3Writer) Write(path string, meta *types.TrackMeta) (err error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true}) //nolint:exhaustruct
	if nil != err {
		return fmt.Errorf("failed to open mp3 file for tagging: %v", err)
	}
	defer func() {
		if closeErr := tag.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close mp3 file: %v", closeErr))
		}
	}()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if meta.AlbumTitle != "" {
		tag.SetAlbum(meta.AlbumTitle)
	}
	if meta.AlbumArtist != "" {
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, meta.AlbumArtist)
	}
	if meta.Artist != "" {
		tag.SetArtist(meta.Artist)
	}
	if meta.Title != "" {
		tag.SetTitle(meta.Title)
	}
	if meta.Genre != "" {
		tag.SetGenre(meta.Genre)
	}
	if meta.TrackNum > 0 {
		trck := strconv.Itoa(meta.TrackNum)
		if meta.TrackTotal > 0 {
			trck += "/" + strconv.Itoa(meta.TrackTotal)
		}
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, trck)
	}
	if meta.Year > 0 {
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, strconv.Itoa(meta.Year))
	}

	// Timed lyrics keep their LRC timestamps inside the USLT frame, which
	// is what most players expect.
	if meta.LyricsText != "" && meta.Lyrics != types.LyricsNone {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "und",
			ContentDescriptor: "",
			Lyrics:            meta.LyricsText,
		})
	}

	if len(meta.CoverData) > 0 {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    coverMIME(meta.CoverData),
			PictureType: id3v2.PTFrontCover,
			Description: "",
			Picture:     meta.CoverData,
		})
	}

	if err := tag.Save(); nil != err {
		return fmt.Errorf("failed to save mp3 tags: %v", err)
	}

	return nil
}
