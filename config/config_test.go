package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamusic/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("YAMUSIC_TOKEN", "y0_test")

	confPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(confPath, []byte("out_dir: /music\n"), 0o600))

	conf, err := config.Load(confPath)
	require.NoError(t, err)

	assert.Equal(t, 4, conf.Quality)
	assert.Equal(t, "/music", conf.OutDir)
	assert.Equal(t, "{album_artist} - {album_title}", conf.AlbumTemplate)
	assert.Equal(t, "{track_num_pad}. {title}", conf.TrackTemplate)
	assert.Equal(t, "ffmpeg", conf.FFmpegPath)
	assert.Equal(t, "y0_test", conf.Token)
	assert.Equal(t, "info", conf.Log.Level)
	assert.Equal(t, "pretty", conf.Log.Format)
}

func TestLoadFullConfig(t *testing.T) {
	t.Setenv("YAMUSIC_TOKEN", "y0_test")

	confPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(confPath, []byte(`
quality: 2
out_dir: /music
album_template: "{year} - {album_title}"
track_template: "{track_num}. {artist} - {title}"
keep_covers: true
embed_covers: true
original_covers: true
write_lyrics: true
lyrics_sidecar: true
sleep: true
ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
log:
  level: debug
  format: json
`), 0o600))

	conf, err := config.Load(confPath)
	require.NoError(t, err)

	assert.Equal(t, 2, conf.Quality)
	assert.True(t, conf.KeepCovers)
	assert.True(t, conf.EmbedCovers)
	assert.True(t, conf.OriginalCovers)
	assert.True(t, conf.WriteLyrics)
	assert.True(t, conf.LyricsSidecar)
	assert.True(t, conf.Sleep)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", conf.FFmpegPath)
	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, "json", conf.Log.Format)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("YAMUSIC_TOKEN", "")

	confPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(confPath, []byte("quality: 1\n"), 0o600))

	_, err := config.Load(confPath)
	require.ErrorContains(t, err, "YAMUSIC_TOKEN")
}

func TestLoadInvalidQuality(t *testing.T) {
	t.Setenv("YAMUSIC_TOKEN", "y0_test")

	confPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(confPath, []byte("quality: 9\n"), 0o600))

	_, err := config.Load(confPath)
	require.ErrorContains(t, err, "quality")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("YAMUSIC_TOKEN", "y0_test")

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
