package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamusic/yandex/types"
)

func TestParseLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		ok   bool
		want types.Link
	}{
		{
			name: "album",
			url:  "https://music.yandex.ru/album/123456",
			ok:   true,
			want: types.Link{Kind: types.LinkKindAlbum, AlbumID: "123456"},
		},
		{
			name: "album with query",
			url:  "https://music.yandex.ru/album/123456?utm_medium=copy_link",
			ok:   true,
			want: types.Link{Kind: types.LinkKindAlbum, AlbumID: "123456"},
		},
		{
			name: "album track",
			url:  "https://music.yandex.ru/album/123456/track/789",
			ok:   true,
			want: types.Link{Kind: types.LinkKindAlbumTrack, AlbumID: "123456", TrackID: "789"},
		},
		{
			name: "com domain",
			url:  "https://music.yandex.com/album/123456/track/789",
			ok:   true,
			want: types.Link{Kind: types.LinkKindAlbumTrack, AlbumID: "123456", TrackID: "789"},
		},
		{
			name: "user playlist",
			url:  "https://music.yandex.ru/users/someone/playlists/1000",
			ok:   true,
			want: types.Link{Kind: types.LinkKindPlaylist, PlaylistID: "1000"},
		},
		{
			name: "artist is unsupported",
			url:  "https://music.yandex.ru/artist/123",
			ok:   false,
		},
		{
			name: "garbage",
			url:  "not a url",
			ok:   false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, ok := types.ParseLink(test.url)
			require.Equal(t, test.ok, ok)
			if test.ok {
				assert.Exactly(t, test.want, got)
			}
		})
	}
}
