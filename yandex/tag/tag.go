// Package tag writes track metadata into the three mutually incompatible
// tag formats the service serves: FLAC vorbis comments, ID3v2.4 frames,
// and MP4 atoms. Each implementation owns its own field mapping; fields
// whose source value is empty or unknown are never written.
package tag

import (
	"github.com/gabriel-vasile/mimetype"

	"github.com/xeptore/yamusic/yandex/types"
)

type Writer interface {
	Write(path string, meta *types.TrackMeta) error
}

// ForFamily selects the writer implementation for a resolved codec
// family. Unknown codec identifiers are rejected earlier by
// types.ResolveSpecs, so an unhandled family here is a programming error.
func ForFamily(family types.TagFamily) Writer {
	switch family {
	case types.TagFamilyFLAC:
		return flacWriter{}
	case types.TagFamilyMP3:
		return mp3Writer{}
	case types.TagFamilyMP4:
		return mp4Writer{}
	default:
		panic("unexpected tag family: " + family.String())
	}
}

func coverMIME(data []byte) string {
	return mimetype.Detect(data).String()
}
