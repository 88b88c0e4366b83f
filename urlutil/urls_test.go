package urlutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamusic/urlutil"
)

func TestClean(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://music.yandex.ru/album/1", urlutil.Clean("  https://music.yandex.ru/album/1/ "))
	assert.Equal(t, "https://music.yandex.ru/album/1", urlutil.Clean("https://music.yandex.ru/album/1"))
}

func TestProcessDedupes(t *testing.T) {
	t.Parallel()

	got, err := urlutil.Process([]string{
		"https://music.yandex.ru/album/1",
		"https://music.yandex.ru/album/1/",
		"HTTPS://MUSIC.YANDEX.RU/ALBUM/1",
		"https://music.yandex.ru/album/2",
	})
	require.NoError(t, err)
	assert.Exactly(t, []string{
		"https://music.yandex.ru/album/1",
		"https://music.yandex.ru/album/2",
	}, got)
}

func TestProcessExpandsTextFiles(t *testing.T) {
	t.Parallel()

	listPath := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(listPath, []byte(`
https://music.yandex.ru/album/3

https://music.yandex.ru/album/4/
https://music.yandex.ru/album/3
`), 0o600))

	got, err := urlutil.Process([]string{
		"https://music.yandex.ru/album/4",
		listPath,
		listPath,
	})
	require.NoError(t, err)
	assert.Exactly(t, []string{
		"https://music.yandex.ru/album/4",
		"https://music.yandex.ru/album/3",
	}, got)
}

func TestProcessMissingListFile(t *testing.T) {
	t.Parallel()

	_, err := urlutil.Process([]string{filepath.Join(t.TempDir(), "nope.txt")})
	require.Error(t, err)
}
