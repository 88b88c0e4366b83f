package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamusic/yandex/fs"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{`AC/DC: Back?`, "AC_DC_ Back_"},
		{`  leading spaces`, "leading spaces"},
		{`a<b>c|d"e`, "a_b_c_d_e"},
		{"plain name", "plain name"},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, fs.Sanitize(test.in))
		})
	}
}

func TestSanitizeDirTrimsTrailingPeriods(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Vol. 1 - Best of", fs.SanitizeDir("Vol. 1 - Best of..."))
	assert.Equal(t, "Album", fs.SanitizeDir("Album . "))
}

func TestPadTrackNum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		num, total int
		want       string
	}{
		{3, 7, "3"},
		{3, 9, "3"},
		{3, 10, "03"},
		{3, 42, "03"},
		{12, 42, "12"},
		{7, 100, "007"},
	}
	for _, test := range tests {
		t.Run(test.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, fs.PadTrackNum(test.num, test.total))
		})
	}
}

func defaultPlanner() fs.Planner {
	return fs.Planner{
		AlbumTemplate: fs.DefaultAlbumTemplate,
		TrackTemplate: fs.DefaultTrackTemplate,
		MaxPathLen:    0,
	}
}

func TestTrackPlan(t *testing.T) {
	t.Parallel()

	p := defaultPlanner()
	vars := fs.Vars{ //nolint:exhaustruct
		Title:      "Song",
		TrackNum:   3,
		TrackTotal: 42,
	}
	pl := p.Track("/music/Artist - Album", vars, ".flac")
	assert.False(t, pl.Fallback)
	assert.Equal(t, filepath.Join("/music/Artist - Album", "03. Song.flac"), pl.Final())
	assert.Equal(t, filepath.Join("/music/Artist - Album", "03. Song.incomplete"), pl.Incomplete())
	assert.Equal(t, filepath.Join("/music/Artist - Album", "03. Song.incomplete_dec"), pl.IncompleteDec())
	assert.Equal(t, filepath.Join("/music/Artist - Album", "03. Song.lrc"), pl.Lyrics())
}

func TestTrackPlanLengthFallback(t *testing.T) {
	t.Parallel()

	p := defaultPlanner()
	p.MaxPathLen = 64

	vars := fs.Vars{ //nolint:exhaustruct
		Title:      strings.Repeat("Very Long Title ", 10),
		TrackNum:   5,
		TrackTotal: 12,
	}
	pl := p.Track("/music/album", vars, ".flac")
	assert.True(t, pl.Fallback)
	assert.Equal(t, filepath.Join("/music/album", "05.flac"), pl.Final())

	// Deterministic across invocations.
	again := p.Track("/music/album", vars, ".flac")
	assert.Exactly(t, pl, again)
}

func TestAlbumDirName(t *testing.T) {
	t.Parallel()

	p := defaultPlanner()
	got := p.AlbumDirName(fs.Vars{AlbumArtist: "Some/Artist", AlbumTitle: "Album?..."}) //nolint:exhaustruct
	assert.Equal(t, "Some_Artist - Album_", got)
}

func TestTemplatesOmitUnknownNumerics(t *testing.T) {
	t.Parallel()

	p := fs.Planner{
		AlbumTemplate: "{album_artist} - {album_title} ({year})",
		TrackTemplate: "{track_num}{track_num_pad}{title}",
		MaxPathLen:    0,
	}

	vars := fs.Vars{ //nolint:exhaustruct
		AlbumArtist: "Artist",
		AlbumTitle:  "Album",
		Title:       "Song",
	}
	assert.Equal(t, "Artist - Album ()", p.AlbumDirName(vars))

	pl := p.Track("/music", vars, ".flac")
	assert.Equal(t, "Song", pl.Stem)

	vars.Year = 1998
	assert.Equal(t, "Artist - Album (1998)", p.AlbumDirName(vars))
}

func TestAnyExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := defaultPlanner()
	vars := fs.Vars{Title: "Song", TrackNum: 1, TrackTotal: 7} //nolint:exhaustruct

	_, exists, err := p.AnyExists(dir, vars)
	require.NoError(t, err)
	assert.False(t, exists)

	existing := filepath.Join(dir, "1. Song.m4a")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o600))

	path, exists, err := p.AnyExists(dir, vars)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, existing, path)
}

func TestFinalizeRemovesIntermediates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := defaultPlanner()
	pl := p.Track(dir, fs.Vars{Title: "Song", TrackNum: 2, TrackTotal: 9}, ".flac") //nolint:exhaustruct

	require.NoError(t, os.WriteFile(pl.IncompleteDec(), []byte("leftover"), 0o600))
	require.NoError(t, os.WriteFile(pl.Incomplete(), []byte("final container"), 0o600))

	require.NoError(t, pl.Finalize(pl.Incomplete()))

	b, err := os.ReadFile(pl.Final())
	require.NoError(t, err)
	assert.Equal(t, []byte("final container"), b)

	_, err = os.Stat(pl.Incomplete())
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(pl.IncompleteDec())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
