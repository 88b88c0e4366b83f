package token_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/xeptore/yamusic/token"
)

const storageKey = "_music-application://desktop\x00\x01oauth"

func writeStorageDB(t *testing.T, value []byte) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "leveldb")
	db, err := leveldb.OpenFile(dir, nil)
	require.NoError(t, err)

	if value != nil {
		require.NoError(t, db.Put([]byte(storageKey), value, nil))
	}
	require.NoError(t, db.Close())

	return dir
}

func TestExtract(t *testing.T) {
	t.Parallel()

	dir := writeStorageDB(t, []byte("\x01{\"value\":\"y0_AgAAAAA\"}"))

	got, err := token.Extract(dir)
	require.NoError(t, err)
	assert.Equal(t, "y0_AgAAAAA", got)
}

func TestExtractMissingKey(t *testing.T) {
	t.Parallel()

	dir := writeStorageDB(t, nil)

	_, err := token.Extract(dir)
	require.ErrorIs(t, err, token.ErrNotFound)
}

func TestExtractMalformedValue(t *testing.T) {
	t.Parallel()

	dir := writeStorageDB(t, []byte("\x01not-json"))

	_, err := token.Extract(dir)
	require.Error(t, err)
}
