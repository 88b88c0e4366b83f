package types

import (
	"strings"

	"github.com/xeptore/yamusic/iterutil"
)

type Artist struct {
	Name string `json:"name"`
}

type Label struct {
	Name string `json:"name"`
}

func JoinArtists(artists []Artist) string {
	return strings.Join(iterutil.Map(artists, func(_ int, a Artist) string { return a.Name }), ", ")
}

func JoinLabels(labels []Label) string {
	return strings.Join(iterutil.Map(labels, func(_ int, l Label) string { return l.Name }), ", ")
}

type LyricsInfo struct {
	HasAvailableSyncLyrics bool `json:"hasAvailableSyncLyrics"`
	HasAvailableTextLyrics bool `json:"hasAvailableTextLyrics"`
}

type AlbumTrack struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Artists    []Artist   `json:"artists"`
	Available  bool       `json:"available"`
	LyricsInfo LyricsInfo `json:"lyricsInfo"`
}

type AlbumMeta struct {
	Title     string         `json:"title"`
	Artists   []Artist       `json:"artists"`
	Available bool           `json:"available"`
	CoverURI  string         `json:"coverUri"`
	Genre     string         `json:"genre"`
	Labels    []Label        `json:"labels"`
	Volumes   [][]AlbumTrack `json:"volumes"`
	Year      int            `json:"year"`
}

// TrackAlbum is the album object embedded in playlist track entries. It
// carries the same fields as AlbumMeta minus the volumes.
type TrackAlbum struct {
	Title     string   `json:"title"`
	Artists   []Artist `json:"artists"`
	Available bool     `json:"available"`
	Genre     string   `json:"genre"`
	Labels    []Label  `json:"labels"`
	Year      int      `json:"year"`
}

type PlaylistTrack struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Artists    []Artist     `json:"artists"`
	Albums     []TrackAlbum `json:"albums"`
	Available  bool         `json:"available"`
	CoverURI   string       `json:"coverUri"`
	LyricsInfo LyricsInfo   `json:"lyricsInfo"`
}

type PlaylistMeta struct {
	Title     string `json:"title"`
	Available bool   `json:"available"`
	Owner     struct {
		Login string `json:"login"`
	} `json:"owner"`
	Tracks []struct {
		Track PlaylistTrack `json:"track"`
	} `json:"tracks"`
}

// DownloadInfo is the result of a signed file-info request. Key is a hex
// encoded AES-128 key, present only for container-encrypted codec variants.
type DownloadInfo struct {
	URL     string `json:"url"`
	Codec   string `json:"codec"`
	Bitrate int    `json:"bitrate"`
	Key     string `json:"key"`
}

type LyricsMeta struct {
	DownloadURL string `json:"downloadUrl"`
}
