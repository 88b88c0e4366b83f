package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamusic/yandex/types"
)

func TestResolveSpecs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		codec   string
		bitrate int
		want    types.Specs
	}{
		{
			codec:   "flac",
			bitrate: 0,
			want:    types.Specs{Display: "FLAC", Ext: ".flac", Family: types.TagFamilyFLAC, Muxer: "flac", Encrypted: false},
		},
		{
			codec:   "flac-mp4",
			bitrate: 0,
			want:    types.Specs{Display: "FLAC", Ext: ".flac", Family: types.TagFamilyFLAC, Muxer: "flac", Encrypted: true},
		},
		{
			codec:   "mp3",
			bitrate: 320,
			want:    types.Specs{Display: "320 Kbps MP3", Ext: ".mp3", Family: types.TagFamilyMP3, Muxer: "mp3", Encrypted: false},
		},
		{
			codec:   "aac",
			bitrate: 256,
			want:    types.Specs{Display: "256 Kbps AAC", Ext: ".m4a", Family: types.TagFamilyMP4, Muxer: "mp4", Encrypted: false},
		},
		{
			codec:   "he-aac",
			bitrate: 64,
			want:    types.Specs{Display: "64 Kbps AAC", Ext: ".m4a", Family: types.TagFamilyMP4, Muxer: "mp4", Encrypted: false},
		},
		{
			codec:   "he-aac-mp4",
			bitrate: 64,
			want:    types.Specs{Display: "64 Kbps AAC", Ext: ".m4a", Family: types.TagFamilyMP4, Muxer: "mp4", Encrypted: true},
		},
	}
	for _, test := range tests {
		t.Run(test.codec, func(t *testing.T) {
			t.Parallel()

			got, err := types.ResolveSpecs(test.codec, test.bitrate)
			require.NoError(t, err)
			assert.Exactly(t, test.want, got)
		})
	}
}

func TestResolveSpecsUnknownCodec(t *testing.T) {
	t.Parallel()

	_, err := types.ResolveSpecs("opus", 128)
	require.ErrorIs(t, err, types.ErrUnknownCodec)
	assert.Contains(t, err.Error(), "opus")
}
