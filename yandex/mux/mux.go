// Package mux invokes the external ffmpeg binary to repackage a decrypted
// elementary stream into its final container without re-encoding.
package mux

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type Muxer struct {
	path string
}

func New(ffmpegPath string) Muxer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	return Muxer{path: ffmpegPath}
}

// Remux copies the audio stream of inPath into outPath. format is the
// ffmpeg muxer name, required because outPath carries a temp suffix the
// tool cannot infer a container from. On a non-zero exit the captured
// stderr is surfaced verbatim inside the returned error.
func (m Muxer) Remux(ctx context.Context, inPath, outPath, format string) error {
	args := []string{"-y", "-i", inPath, "-c:a", "copy", "-f", format, outPath}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, m.path, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); nil != err {
		return fmt.Errorf("%s %s failed: %v: %s", m.path, strings.Join(args, " "), err, stderr.String())
	}

	return nil
}
