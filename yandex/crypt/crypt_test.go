package crypt_test

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/yamusic/yandex/crypt"
)

func encryptCTR(t *testing.T, key, plain []byte) []byte {
	t.Helper()

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	out := make([]byte, len(plain))
	cipher.NewCTR(block, make([]byte, aes.BlockSize)).XORKeyStream(out, plain)

	return out
}

func TestNewReaderRoundTrip(t *testing.T) {
	t.Parallel()

	key := make([]byte, 16)
	_, err := rand.Read(key)
	require.NoError(t, err)

	// Deliberately not block-aligned.
	plain := make([]byte, 1<<16+13)
	_, err = rand.Read(plain)
	require.NoError(t, err)

	enc := encryptCTR(t, key, plain)

	r, err := crypt.NewReader(bytes.NewReader(enc), hex.EncodeToString(key))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Len(t, got, len(plain))
	assert.Exactly(t, plain, got)
}

func TestNewReaderIsNotAnInvolutionAcrossKeys(t *testing.T) {
	t.Parallel()

	key := bytes.Repeat([]byte{0x42}, 16)
	plain := []byte("some elementary stream bytes")
	enc := encryptCTR(t, key, plain)

	r, err := crypt.NewReader(bytes.NewReader(enc), hex.EncodeToString(bytes.Repeat([]byte{0x24}, 16)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.NotEqual(t, plain, got)
}

func TestNewReaderRejectsBadKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		hexKey string
	}{
		{name: "not hex", hexKey: "zz"},
		{name: "too short", hexKey: hex.EncodeToString(make([]byte, 8))},
		{name: "too long", hexKey: hex.EncodeToString(make([]byte, 32))},
		{name: "empty", hexKey: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := crypt.NewReader(bytes.NewReader(nil), test.hexKey)
			require.Error(t, err)
		})
	}
}
