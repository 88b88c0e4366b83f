package types

import (
	"github.com/rs/zerolog"
)

type LyricsKind int

const (
	LyricsNone LyricsKind = iota
	LyricsUntimed
	LyricsTimed
)

func (k LyricsKind) String() string {
	switch k {
	case LyricsNone:
		return "none"
	case LyricsUntimed:
		return "untimed"
	case LyricsTimed:
		return "timed"
	}

	return "unknown"
}

// TrackMeta is the per-track tagging metadata assembled by the album or
// playlist walker before the track pipeline runs. Numeric fields of zero
// mean "unknown" and are never written to tags.
type TrackMeta struct {
	AlbumArtist string
	AlbumTitle  string
	Artist      string
	Genre       string
	Label       string
	Title       string
	Year        int
	TrackNum    int
	TrackTotal  int
	CoverData   []byte
	Lyrics      LyricsKind
	LyricsText  string
	// TrackOnly marks single-track mode (album URL with /track/<id>).
	// Affects display numbering only.
	TrackOnly bool
}

func (m *TrackMeta) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Str("album_artist", m.AlbumArtist).
		Str("album_title", m.AlbumTitle).
		Str("artist", m.Artist).
		Str("title", m.Title).
		Int("track_num", m.TrackNum).
		Int("track_total", m.TrackTotal).
		Str("lyrics", m.Lyrics.String())
}

func AlbumTrackMeta(album *AlbumMeta, trackTotal int) TrackMeta {
	return TrackMeta{ //nolint:exhaustruct
		AlbumArtist: JoinArtists(album.Artists),
		AlbumTitle:  album.Title,
		Genre:       album.Genre,
		Label:       JoinLabels(album.Labels),
		Year:        album.Year,
		TrackTotal:  trackTotal,
	}
}

func PlaylistTrackAlbumMeta(album *TrackAlbum, trackTotal int, coverData []byte) TrackMeta {
	return TrackMeta{ //nolint:exhaustruct
		AlbumArtist: JoinArtists(album.Artists),
		AlbumTitle:  album.Title,
		Genre:       album.Genre,
		Label:       JoinLabels(album.Labels),
		Year:        album.Year,
		TrackTotal:  trackTotal,
		CoverData:   coverData,
	}
}

func lyricsKindOf(info LyricsInfo) LyricsKind {
	switch {
	case info.HasAvailableSyncLyrics:
		return LyricsTimed
	case info.HasAvailableTextLyrics:
		return LyricsUntimed
	default:
		return LyricsNone
	}
}

func (m *TrackMeta) FillFromAlbumTrack(track *AlbumTrack, trackNum int, trackOnly bool) {
	m.Artist = JoinArtists(track.Artists)
	m.Title = track.Title
	m.TrackNum = trackNum
	m.Lyrics = lyricsKindOf(track.LyricsInfo)
	m.TrackOnly = trackOnly
}

func (m *TrackMeta) FillFromPlaylistTrack(track *PlaylistTrack, trackNum int) {
	m.Artist = JoinArtists(track.Artists)
	m.Title = track.Title
	m.TrackNum = trackNum
	m.Lyrics = lyricsKindOf(track.LyricsInfo)
}
