package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/xeptore/yamusic/redact"
	"github.com/xeptore/yamusic/yandex/fs"
)

type Config struct {
	Quality        int    `yaml:"quality"`
	OutDir         string `yaml:"out_dir"`
	AlbumTemplate  string `yaml:"album_template"`
	TrackTemplate  string `yaml:"track_template"`
	KeepCovers     bool   `yaml:"keep_covers"`
	EmbedCovers    bool   `yaml:"embed_covers"`
	OriginalCovers bool   `yaml:"original_covers"`
	WriteLyrics    bool   `yaml:"write_lyrics"`
	LyricsSidecar  bool   `yaml:"lyrics_sidecar"`
	Sleep          bool   `yaml:"sleep"`
	FFmpegPath     string `yaml:"ffmpeg_path"`
	Token          string `yaml:"-"`
	Log            Log    `yaml:"log"`
}

func (c *Config) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Int("quality", c.Quality).
		Str("out_dir", c.OutDir).
		Str("album_template", c.AlbumTemplate).
		Str("track_template", c.TrackTemplate).
		Bool("keep_covers", c.KeepCovers).
		Bool("embed_covers", c.EmbedCovers).
		Bool("original_covers", c.OriginalCovers).
		Bool("write_lyrics", c.WriteLyrics).
		Bool("lyrics_sidecar", c.LyricsSidecar).
		Bool("sleep", c.Sleep).
		Str("ffmpeg_path", c.FFmpegPath).
		Str("token", redact.String(c.Token)).
		Dict("log", c.Log.ToDict())
}

func (c *Config) setDefaults() {
	if c.Quality == 0 {
		c.Quality = 4
	}

	if c.OutDir == "" {
		c.OutDir = "./Yandex Music downloads"
	}

	if c.AlbumTemplate == "" {
		c.AlbumTemplate = fs.DefaultAlbumTemplate
	}

	if c.TrackTemplate == "" {
		c.TrackTemplate = fs.DefaultTrackTemplate
	}

	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}

	c.Log.setDefaults()
}

func (c *Config) validate() error {
	if c.Quality < 1 || c.Quality > 4 {
		return fmt.Errorf("quality must be between 1 and 4, got: %d", c.Quality)
	}

	if c.Token == "" {
		return errors.New("make sure the YAMUSIC_TOKEN environment variable is set")
	}

	if err := c.Log.validate(); nil != err {
		return fmt.Errorf("log config validation failed: %v", err)
	}

	return nil
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Log) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Str("level", c.Level).
		Str("format", c.Format)
}

func (c *Log) setDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}

	if c.Format == "" {
		c.Format = "pretty"
	}
}

func (c *Log) validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error", "fatal", "panic"}, c.Level) {
		return fmt.Errorf(
			"level must be one of: debug, info, warn, error, fatal, panic, got: %s",
			c.Level,
		)
	}

	if !slices.Contains([]string{"json", "pretty"}, c.Format) {
		return fmt.Errorf("format must be 'json' or 'pretty', got: %s", c.Format)
	}

	return nil
}

// Load reads filename (config.yaml when empty). A missing file is not an
// error; defaults plus the token environment variable are enough to run.
func Load(filename string) (*Config, error) {
	var conf Config
	data, err := os.ReadFile(lo.Ternary(len(filename) > 0, filename, "config.yaml"))
	if nil != err {
		if len(filename) > 0 || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %v", filename, err)
		}
	} else if err := yaml.Unmarshal(data, &conf); nil != err {
		return nil, fmt.Errorf("failed to parse config file %s: %v", filename, err)
	}

	conf.Token = os.Getenv("YAMUSIC_TOKEN")
	conf.setDefaults()

	if err := conf.validate(); nil != err {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return &conf, nil
}
