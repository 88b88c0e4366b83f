package types

import (
	"errors"
	"fmt"
	"strconv"
)

type TagFamily int

const (
	TagFamilyFLAC TagFamily = iota
	TagFamilyMP3
	TagFamilyMP4
)

func (f TagFamily) String() string {
	switch f {
	case TagFamilyFLAC:
		return "flac"
	case TagFamilyMP3:
		return "mp3"
	case TagFamilyMP4:
		return "mp4"
	}

	return "unknown"
}

var ErrUnknownCodec = errors.New("unknown codec")

// Specs describes how a codec identifier returned by file-info maps onto
// local handling: display string, file extension, tag family, ffmpeg
// muxer name, and whether the payload arrives stream-encrypted and must
// be decrypted and remuxed.
type Specs struct {
	Display   string
	Ext       string
	Family    TagFamily
	Muxer     string
	Encrypted bool
}

func ResolveSpecs(codec string, bitrate int) (Specs, error) {
	switch codec {
	case "flac":
		return Specs{Display: "FLAC", Ext: ".flac", Family: TagFamilyFLAC, Muxer: "flac", Encrypted: false}, nil
	case "flac-mp4":
		return Specs{Display: "FLAC", Ext: ".flac", Family: TagFamilyFLAC, Muxer: "flac", Encrypted: true}, nil
	case "mp3":
		return Specs{Display: strconv.Itoa(bitrate) + " Kbps MP3", Ext: ".mp3", Family: TagFamilyMP3, Muxer: "mp3", Encrypted: false}, nil
	case "aac", "he-aac":
		// Important: must force mp4 muxer (not ipod) when remuxing.
		return Specs{Display: strconv.Itoa(bitrate) + " Kbps AAC", Ext: ".m4a", Family: TagFamilyMP4, Muxer: "mp4", Encrypted: false}, nil
	case "aac-mp4", "he-aac-mp4":
		return Specs{Display: strconv.Itoa(bitrate) + " Kbps AAC", Ext: ".m4a", Family: TagFamilyMP4, Muxer: "mp4", Encrypted: true}, nil
	default:
		return Specs{}, fmt.Errorf("%w: %s", ErrUnknownCodec, codec) //nolint:exhaustruct
	}
}

// KnownExts lists every extension the pipeline can produce. The path
// planner probes these for the idempotent skip before any network call.
func KnownExts() []string {
	return []string{".flac", ".mp3", ".m4a"}
}
