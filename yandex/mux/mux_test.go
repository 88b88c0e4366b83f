package mux_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamusic/yandex/mux"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub executable test requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o700))

	return path
}

func TestRemuxSuccess(t *testing.T) {
	t.Parallel()

	// Copies $3 (the -i argument) to the last argument.
	script := writeScript(t, `
in=$3
for out in "$@"; do :; done
cp "$in" "$out"
`)

	dir := t.TempDir()
	in := filepath.Join(dir, "a.incomplete_dec")
	out := filepath.Join(dir, "a.incomplete")
	require.NoError(t, os.WriteFile(in, []byte("payload"), 0o600))

	m := mux.New(script)
	require.NoError(t, m.Remux(t.Context(), in, out, "flac"))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), b)
}

func TestRemuxCapturesStderr(t *testing.T) {
	t.Parallel()

	script := writeScript(t, `
echo "Unknown encoder 'weird'" >&2
exit 1
`)

	m := mux.New(script)
	err := m.Remux(t.Context(), "in", "out", "mp4")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unknown encoder 'weird'")
}
