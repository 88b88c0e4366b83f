package log

import (
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/xeptore/yamusic/constants"
)

func FromConfig(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if nil != err {
		panic("invalid logging level: " + level)
	}

	switch strings.ToLower(format) {
	case "json":
		return zerolog.
			New(os.Stderr).
			Hook(&stackHook{}).
			With().
			Timestamp().
			Str("version", constants.Version).
			Logger().
			Level(lvl)
	case "pretty":
		return zerolog.
			New(zerolog.ConsoleWriter{ //nolint:exhaustruct
				Out:          os.Stderr,
				TimeFormat:   time.RFC3339,
				TimeLocation: time.UTC,
			}).
			Hook(&stackHook{}).
			With().
			Timestamp().
			Str("version", constants.Version).
			Logger().
			Level(lvl)
	default:
		panic("invalid logging format: " + format)
	}
}

// NewDefault builds the bootstrap logger used before config is loaded.
// JSON when stderr is not a terminal, pretty otherwise.
func NewDefault() zerolog.Logger {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return FromConfig("info", "json")
	}

	return FromConfig("info", "pretty")
}
