package types

import (
	"regexp"
)

type LinkKind int

func (k LinkKind) String() string {
	switch k {
	case LinkKindAlbum:
		return "album"
	case LinkKindAlbumTrack:
		return "track"
	case LinkKindPlaylist:
		return "playlist"
	}

	return "unknown"
}

const (
	LinkKindAlbum LinkKind = iota
	LinkKindAlbumTrack
	LinkKindPlaylist
)

type Link struct {
	Kind       LinkKind
	AlbumID    string
	TrackID    string
	PlaylistID string
}

var (
	albumLinkRegex    = regexp.MustCompile(`^https://music\.yandex\.(?:ru|com)/album/(\d+)(?:/track/(\d+))?/?(?:\?.+)?$`)
	playlistLinkRegex = regexp.MustCompile(`^https://music\.yandex\.(?:ru|com)/users/[^/]+/playlists/(\d+)/?(?:\?.+)?$`)
)

// ParseLink matches a Yandex Music web URL against the supported link
// shapes. The second return value is false for unrecognized URLs.
func ParseLink(rawURL string) (Link, bool) {
	if m := albumLinkRegex.FindStringSubmatch(rawURL); nil != m {
		if m[2] != "" {
			return Link{Kind: LinkKindAlbumTrack, AlbumID: m[1], TrackID: m[2]}, true //nolint:exhaustruct
		}

		return Link{Kind: LinkKindAlbum, AlbumID: m[1]}, true //nolint:exhaustruct
	}

	if m := playlistLinkRegex.FindStringSubmatch(rawURL); nil != m {
		return Link{Kind: LinkKindPlaylist, PlaylistID: m[1]}, true //nolint:exhaustruct
	}

	return Link{}, false //nolint:exhaustruct
}
