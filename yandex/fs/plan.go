// Package fs shapes the on-disk layout of downloaded tracks: templated,
// sanitized, length-bounded file names with deterministic temp-file
// naming and atomic finalization.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/xeptore/yamusic/mathutil"
	"github.com/xeptore/yamusic/yandex/types"
)

var reservedChars = regexp.MustCompile(`[\/:*?"><|]`)

// Sanitize replaces filesystem-reserved characters with underscores and
// trims leading whitespace.
func Sanitize(name string) string {
	return strings.TrimLeft(reservedChars.ReplaceAllString(name, "_"), " \t")
}

// SanitizeDir additionally trims trailing periods and whitespace, which
// some platforms reject in directory names.
func SanitizeDir(name string) string {
	return strings.TrimRight(Sanitize(name), ". \t")
}

// PadTrackNum renders num zero-padded to the decimal digit count of
// total: total 9 gives width 1, total 10 gives width 2.
func PadTrackNum(num, total int) string {
	return fmt.Sprintf("%0*d", mathutil.Digits(total), num)
}

type Vars struct {
	AlbumArtist string
	AlbumTitle  string
	Label       string
	Artist      string
	Title       string
	Year        int
	TrackNum    int
	TrackTotal  int
}

func VarsFrom(meta *types.TrackMeta) Vars {
	return Vars{
		AlbumArtist: meta.AlbumArtist,
		AlbumTitle:  meta.AlbumTitle,
		Label:       meta.Label,
		Artist:      meta.Artist,
		Title:       meta.Title,
		Year:        meta.Year,
		TrackNum:    meta.TrackNum,
		TrackTotal:  meta.TrackTotal,
	}
}

// Unknown numeric metadata expands to the empty string, matching the
// tag writers which omit zero-valued fields.
func numVar(n int) string {
	if n <= 0 {
		return ""
	}

	return strconv.Itoa(n)
}

func expand(tmpl string, vars Vars) string {
	pad := ""
	if vars.TrackNum > 0 {
		pad = PadTrackNum(vars.TrackNum, vars.TrackTotal)
	}
	r := strings.NewReplacer(
		"{album_artist}", vars.AlbumArtist,
		"{album_title}", vars.AlbumTitle,
		"{label}", vars.Label,
		"{artist}", vars.Artist,
		"{title}", vars.Title,
		"{year}", numVar(vars.Year),
		"{track_num}", numVar(vars.TrackNum),
		"{track_num_pad}", pad,
	)

	return r.Replace(tmpl)
}

const (
	DefaultAlbumTemplate = "{album_artist} - {album_title}"
	DefaultTrackTemplate = "{track_num_pad}. {title}"
)

type Planner struct {
	AlbumTemplate string
	TrackTemplate string
	// MaxPathLen bounds the full composed path; zero means the platform
	// default (255 on Windows, effectively unbounded elsewhere).
	MaxPathLen int
}

func (p Planner) maxPathLen() int {
	if p.MaxPathLen > 0 {
		return p.MaxPathLen
	}
	if runtime.GOOS == "windows" {
		return 255
	}

	return 4095
}

// AlbumDirName renders the sanitized album (or playlist) folder name.
func (p Planner) AlbumDirName(vars Vars) string {
	return SanitizeDir(expand(p.AlbumTemplate, vars))
}

// Plan is a planned track location: directory, extensionless stem, and
// extension. Temp names derive deterministically from the stem so a rerun
// after an interrupted download overwrites the same orphans.
type Plan struct {
	Dir  string
	Stem string
	Ext  string
	// Fallback is set when the templated name exceeded the path length
	// limit and the numeric-only stem was substituted.
	Fallback bool
}

func (pl Plan) Final() string         { return filepath.Join(pl.Dir, pl.Stem+pl.Ext) }
func (pl Plan) Incomplete() string    { return filepath.Join(pl.Dir, pl.Stem+".incomplete") }
func (pl Plan) IncompleteDec() string { return filepath.Join(pl.Dir, pl.Stem+".incomplete_dec") }
func (pl Plan) Lyrics() string        { return filepath.Join(pl.Dir, pl.Stem+".lrc") }

// Track plans the file location for one track inside dir. When the full
// composed path would exceed the length limit it falls back to the
// zero-padded track number as the stem, in the same directory.
func (p Planner) Track(dir string, vars Vars, ext string) Plan {
	stem := Sanitize(expand(p.TrackTemplate, vars))
	if full := filepath.Join(dir, stem+ext); len(full) > p.maxPathLen() {
		return Plan{Dir: dir, Stem: PadTrackNum(vars.TrackNum, vars.TrackTotal), Ext: ext, Fallback: true}
	}

	return Plan{Dir: dir, Stem: stem, Ext: ext, Fallback: false}
}

// AnyExists probes dir for an already-downloaded file for this track
// under any producible extension, before any network request is made.
// It returns the first existing path.
func (p Planner) AnyExists(dir string, vars Vars) (string, bool, error) {
	for _, ext := range types.KnownExts() {
		pl := p.Track(dir, vars, ext)
		if exists, err := FileExists(pl.Final()); nil != err {
			return "", false, err
		} else if exists {
			return pl.Final(), true, nil
		}
	}

	return "", false, nil
}

func FileExists(path string) (bool, error) {
	if i, err := os.Stat(path); nil != err {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("failed to stat file: %v", err)
	} else if i.IsDir() {
		return false, nil
	}

	return true, nil
}

// Finalize atomically moves the completed temp file into place and
// removes any remaining intermediates.
func (pl Plan) Finalize(from string) error {
	if err := os.Rename(from, pl.Final()); nil != err {
		return fmt.Errorf("failed to rename completed track file: %v", err)
	}

	for _, tmp := range []string{pl.Incomplete(), pl.IncompleteDec()} {
		if tmp == from {
			continue
		}
		if err := os.Remove(tmp); nil != err && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove intermediate file: %v", err)
		}
	}

	return nil
}
